// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the application's transport servers.
//
// It starts every enabled transport, waits for the caller's context to be
// cancelled and then shuts all of them down gracefully.
package server
