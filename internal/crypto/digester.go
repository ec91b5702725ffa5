// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-social-graph/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// MaxSecretBytes is the longest plaintext bcrypt digests without
// truncation.
const MaxSecretBytes = 72

// BcryptDigester implements [CredentialManager] on top of bcrypt.
// The zero value is not usable; construct it with [NewDigester].
type BcryptDigester struct {
	cost int
}

// NewDigester builds a [BcryptDigester] from the security settings:
//   - FastHashCost selects bcrypt.MinCost (tests, local development);
//   - otherwise HashCost is used when set;
//   - otherwise bcrypt.DefaultCost.
func NewDigester(cfg config.Security) *BcryptDigester {
	cost := bcrypt.DefaultCost
	switch {
	case cfg.FastHashCost:
		cost = bcrypt.MinCost
	case cfg.HashCost != 0:
		cost = cfg.HashCost
	}

	return &BcryptDigester{cost: cost}
}

// Cost returns the bcrypt work factor used for new digests.
func (d *BcryptDigester) Cost() int {
	return d.cost
}

// Digest implements [Digester].
func (d *BcryptDigester) Digest(plaintext string) (string, error) {
	if len(plaintext) > MaxSecretBytes {
		return "", ErrSecretTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), d.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing secret: %w", err)
	}

	return string(hashed), nil
}

// Verify implements [Digester]. Any comparison error, including a
// malformed digest, is a mismatch.
func (d *BcryptDigester) Verify(plaintext, digest string) bool {
	if digest == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
