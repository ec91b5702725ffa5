// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the go-social-graph command-line client.
//
// Every invocation loads the session file, runs one command against the
// server through [adapter.ServerAdapter] and writes the updated session
// back, so a login survives between invocations. A remembered login can be
// turned into a fresh access token with the restore command.
package client
