// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the server.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled and the
// job has stopped.
type Worker interface {
	Run(ctx context.Context)
}
