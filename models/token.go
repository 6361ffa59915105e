// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType selects which stored session token a check is made against.
type TokenType uint8

// TokenTypeA is the only supported kind; it compares against Account.TokenA.
const TokenTypeA TokenType = 1

// TokenCheck is the input of a session token verification.
type TokenCheck struct {
	Type  TokenType `json:"type"`
	Token string    `json:"token"`
}

// Token wraps a signed JWT bearer envelope.
//
// The "sub" claim carries the account id and the "jti" claim carries the
// account's current TokenA, so rotating TokenA revokes every envelope issued
// before the rotation.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// AccountID is the parsed "sub" claim.
	AccountID uint64 `json:"-"`

	// SessionToken is the "jti" claim.
	SessionToken string `json:"-"`
}

// GetAccountID parses the "sub" claim as a base-10 account id.
func (t *Token) GetAccountID() (uint64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error getting subject from token: %w", err)
	}

	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing account id from subject: %w", err)
	}

	return id, nil
}

func (t *Token) String() string {
	return t.SignedString
}
