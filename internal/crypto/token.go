// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// tokenBytes is the amount of randomness in a remember token (128 bits).
const tokenBytes = 16

// NewToken implements [TokenGenerator]. The token is 16 bytes from the OS
// CSPRNG encoded as unpadded URL-safe base64, 22 characters long.
func (d *BcryptDigester) NewToken() (string, error) {
	return newToken(rand.Reader)
}

func newToken(r io.Reader) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneratingToken, err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
