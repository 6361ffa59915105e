// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sync"

	"github.com/MKhiriev/go-account-keeper/internal/validators"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxUnbiasedByte is the largest multiple of len(tokenAlphabet) that fits in a
// byte. Bytes at or above it are discarded so every symbol is equally likely.
const maxUnbiasedByte = 256 - 256%len(tokenAlphabet)

var hasherPool = sync.Pool{
	New: func() any { return sha256.New() },
}

type credentialCodec struct {
	entropy io.Reader
}

// NewCredentialCodec returns a codec backed by crypto/rand.
func NewCredentialCodec() CredentialCodec {
	return &credentialCodec{entropy: rand.Reader}
}

func (c *credentialCodec) HashCredential(plaintext string) (string, error) {
	if err := validators.CheckValue("password", plaintext, validators.PlaintextSpec); err != nil {
		return "", err
	}

	h := hasherPool.Get().(hash.Hash)
	defer func() {
		h.Reset()
		hasherPool.Put(h)
	}()

	h.Reset()
	h.Write([]byte(plaintext))

	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *credentialCodec) GenerateToken() (string, error) {
	token := make([]byte, validators.TokenLength)
	buf := make([]byte, validators.TokenLength+validators.TokenLength/2)

	for n := 0; n < len(token); {
		if _, err := io.ReadFull(c.entropy, buf); err != nil {
			return "", fmt.Errorf("error reading token entropy: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiasedByte {
				continue
			}
			token[n] = tokenAlphabet[int(b)%len(tokenAlphabet)]
			n++
			if n == len(token) {
				break
			}
		}
	}

	return string(token), nil
}
