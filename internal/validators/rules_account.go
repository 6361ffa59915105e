// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"regexp"

	"github.com/MKhiriev/go-account-keeper/models"
)

const (
	// PasswordLength is the length of a hex SHA-256 credential digest.
	PasswordLength = 64
	// TokenLength is the length of a session token.
	TokenLength = 32
	// MaxMetaLength bounds the ip and transaction id of an audit entry.
	MaxMetaLength = 255
)

var usernamePrefix = regexp.MustCompile(`^[a-zA-Z]`)

// Field rule sets shared by the account and audit validators.
var (
	// UsernameSpec: a non-empty string starting with an ASCII letter, or null.
	UsernameSpec = Spec{
		Type: TypeString,
		Rules: []Rule{
			NonEmpty(),
			Custom("username_prefix", func(v any) bool {
				s, ok := v.(string)
				return ok && usernamePrefix.MatchString(s)
			}),
		},
		AllowNull: true,
	}

	// PasswordSpec: a stored credential digest.
	PasswordSpec = Spec{
		Type:  TypeString,
		Rules: []Rule{NonEmpty(), Between(PasswordLength, PasswordLength)},
	}

	// TokenSpec: a session token.
	TokenSpec = Spec{
		Type:  TypeString,
		Rules: []Rule{NonEmpty(), Between(TokenLength, TokenLength)},
	}

	// TokenTypeSpec: only token kind 1 exists.
	TokenTypeSpec = Spec{
		Type:  TypeNumber,
		Rules: []Rule{Between(1, 1)},
	}

	// PlaintextSpec: a credential before hashing.
	PlaintextSpec = Spec{
		Type:  TypeString,
		Rules: []Rule{NonEmpty()},
	}

	// IDSpec: a store-assigned identifier.
	IDSpec = Spec{
		Type:  TypeNumber,
		Rules: []Rule{AtLeast(1)},
	}

	OpTypeSpec = Spec{
		Type:  TypeNumber,
		Rules: []Rule{OneOf(opTypeValues()...)},
	}

	OpDataSpec = Spec{Type: TypeObject}

	IPSpec = Spec{
		Type:  TypeString,
		Rules: []Rule{AtMost(MaxMetaLength)},
	}

	TransactionIDSpec = Spec{
		Type:  TypeString,
		Rules: []Rule{AtMost(MaxMetaLength)},
	}
)

func opTypeValues() []any {
	types := models.OpTypes()
	values := make([]any, len(types))
	for i, t := range types {
		values[i] = t
	}
	return values
}
