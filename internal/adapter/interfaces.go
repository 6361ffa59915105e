// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the account REST API.
//
// [ServerAdapter] hides the transport from the command-line client. Failures
// returned by the server are decoded into [*ServerError], which keeps the
// numeric account error code, and wrap one of the status sentinels in
// errors.go so callers can match them with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to the account server on behalf of one user.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Register signs up a new account. The server logs it in right away, so
	// the returned bearer token is stored as well.
	Register(ctx context.Context, username, password string) (models.Account, error)

	// Login authenticates and stores the returned bearer token.
	Login(ctx context.Context, username, password string) (models.Account, error)

	// Logout revokes the current session and forgets the stored token.
	Logout(ctx context.Context) error

	// ChangePassword replaces the password of the logged-in account.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	// Me returns the logged-in account.
	Me(ctx context.Context) (models.Account, error)

	// Logs returns the audit trail of the logged-in account, oldest first.
	Logs(ctx context.Context) ([]models.AccountLog, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
