// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Account is a registered identity.
//
// ID is assigned by the store on insert and never changes afterwards.
// Username is nullable; when set it is unique across all accounts.
// Password holds the 64-character hex SHA-256 digest of the credential
// (empty when no password was ever set). TokenA is the current 32-character
// session token (empty until the first login).
type Account struct {
	ID       uint64  `json:"id"`
	Username *string `json:"username"`
	Password string  `json:"-"`
	TokenA   string  `json:"-"`
}

// Clone returns a deep copy of the account so the copy's Username can be
// mutated without aliasing the original.
func (a Account) Clone() Account {
	if a.Username != nil {
		username := *a.Username
		a.Username = &username
	}
	return a
}

// UsernameValue returns the username or an empty string when it is not set.
func (a Account) UsernameValue() string {
	if a.Username == nil {
		return ""
	}
	return *a.Username
}

// HasPassword reports whether a credential digest has been stored.
func (a Account) HasPassword() bool {
	return a.Password != ""
}

// AccountFields is a partial set of mutable account fields.
// A nil field is "not provided" and is left untouched by create/update.
type AccountFields struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	TokenA   *string `json:"tokenA,omitempty"`
}

// IsEmpty reports whether no field is provided.
func (f AccountFields) IsEmpty() bool {
	return f.Username == nil && f.Password == nil && f.TokenA == nil
}

// ApplyTo copies every provided field onto account.
func (f AccountFields) ApplyTo(account *Account) {
	if f.Username != nil {
		username := *f.Username
		account.Username = &username
	}
	if f.Password != nil {
		account.Password = *f.Password
	}
	if f.TokenA != nil {
		account.TokenA = *f.TokenA
	}
}

// AccountFilter narrows account lookups in the store.
// Zero-valued fields do not restrict the result.
type AccountFilter struct {
	IDs      []uint64
	Username *string
	Limit    uint64
}

// Ptr returns a pointer to v. It keeps optional field literals short.
func Ptr[T any](v T) *T {
	return &v
}
