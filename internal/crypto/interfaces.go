// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_codec_mock.go -package=mock

// CredentialCodec turns plaintext credentials into stored digests and mints
// session tokens. It holds no state besides its entropy source and is safe
// for concurrent use.
type CredentialCodec interface {
	// HashCredential returns the lowercase hex SHA-256 digest (64 characters)
	// of plaintext. The same input always yields the same digest. The digest
	// is unsalted and single pass, which is weak against offline guessing;
	// stored credentials depend on this exact format.
	// An empty plaintext fails validation.
	HashCredential(plaintext string) (string, error)

	// GenerateToken returns a fresh 32-character token drawn from [A-Za-z0-9]
	// using a cryptographically secure source.
	GenerateToken() (string, error)
}
