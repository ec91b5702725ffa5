// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the social graph server.
//
// It exposes route wiring, request handlers and middleware. Request tracing,
// access logging, bearer authentication and session throttling happen here
// before requests are delegated to the service layer.
package http
