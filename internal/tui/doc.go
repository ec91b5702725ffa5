// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui holds the terminal pieces of the command-line client: a Bubble
// Tea prompt for reading (masked) input and lipgloss renderers for users and
// follow pages.
package tui
