// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrSecretTooLong is returned by Digest when the plaintext exceeds the
	// 72 bytes bcrypt can absorb.
	ErrSecretTooLong = errors.New("secret must be 72 bytes or fewer")

	// ErrGeneratingToken is returned when the system random source fails.
	ErrGeneratingToken = errors.New("error generating random token")
)
