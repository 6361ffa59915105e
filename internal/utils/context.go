// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// AccountIDCtxKey is the key used to store the authenticated account id
	// in the context.
	//
	// Example of writing a value to the context:
	//
	//	ctx := context.WithValue(ctx, utils.AccountIDCtxKey, uint64(42))
	AccountIDCtxKey = contextKey("accountID")

	requestMetaCtxKey = contextKey("requestMeta")
	useCacheCtxKey    = contextKey("useCache")
	autoSaveCtxKey    = contextKey("autoSave")
)

// GetAccountIDFromContext retrieves the account identifier from the context.
//
// Returns the account id and an ok flag:
//   - ok == true: value is found and has the correct uint64 type
//   - ok == false: value is missing or has an unexpected type
func GetAccountIDFromContext(ctx context.Context) (uint64, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(uint64)
	return accountID, ok
}

// WithAccountID returns a copy of ctx carrying accountID.
func WithAccountID(ctx context.Context, accountID uint64) context.Context {
	return context.WithValue(ctx, AccountIDCtxKey, accountID)
}

// RequestMeta describes where a request came from. Audit entries copy it
// when the caller does not set ip or transaction id explicitly.
type RequestMeta struct {
	IP            string
	TransactionID string
}

// WithRequestMeta returns a copy of ctx carrying meta.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaCtxKey, meta)
}

// RequestMetaFromContext returns the RequestMeta stored in ctx, or the zero
// value when there is none.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaCtxKey).(RequestMeta)
	return meta
}

// WithUseCache sets the default for the "use cache" option of account
// operations running under ctx.
func WithUseCache(ctx context.Context, useCache bool) context.Context {
	return context.WithValue(ctx, useCacheCtxKey, useCache)
}

// UseCacheFromContext reports the "use cache" default stored in ctx.
func UseCacheFromContext(ctx context.Context) (bool, bool) {
	v, ok := ctx.Value(useCacheCtxKey).(bool)
	return v, ok
}

// WithAutoSave sets the default for the "auto save" option of account
// operations running under ctx.
func WithAutoSave(ctx context.Context, autoSave bool) context.Context {
	return context.WithValue(ctx, autoSaveCtxKey, autoSave)
}

// AutoSaveFromContext reports the "auto save" default stored in ctx.
func AutoSaveFromContext(ctx context.Context) (bool, bool) {
	v, ok := ctx.Value(autoSaveCtxKey).(bool)
	return v, ok
}
