// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	errMissingUserID = errors.New("user id argument is required")
	errInvalidUserID = errors.New("user id must be a positive integer")
)
