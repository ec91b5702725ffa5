// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Digester produces and checks irreversible, salted digests of secrets
// (passwords and remember tokens).
type Digester interface {
	// Digest returns a salted digest of plaintext. Two calls with the same
	// input return different digests; compare them only through Verify.
	Digest(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. It fails closed:
	// an empty or malformed digest yields false, never an error.
	Verify(plaintext, digest string) bool
}

// TokenGenerator issues opaque random tokens.
type TokenGenerator interface {
	// NewToken returns a URL-safe random token carrying at least 128 bits
	// of entropy.
	NewToken() (string, error)
}

// CredentialManager is the full credential toolbox used by the auth
// service.
type CredentialManager interface {
	Digester
	TokenGenerator
}
