// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/models"
)

// EntityRepository is the cache capability shared by identity-bearing types.
type EntityRepository[T any] interface {
	// CheckExists fails with ErrAccountNotExist unless entity is a real,
	// previously stored record.
	CheckExists(entity *T) error
	AddToCache(entity T)
	QueryCache(filter func(T) bool) []T
}

// IdentityManager owns every account mutation: validation, persistence and
// cache upkeep. It never writes audit entries itself.
//
// Failing operations return a nil or false result with the error, unless the
// Quietly option is given, in which case the error is logged and nil is
// returned in its place.
type IdentityManager interface {
	EntityRepository[models.Account]

	// CheckModel fails with ErrAccountNotExist when account is nil or has no
	// valid id.
	CheckModel(account *models.Account) error

	// Create stores a new account from the supplied fields. It runs in the
	// transaction given by WithTx, or on its own otherwise; the cache write is
	// deferred until commit.
	Create(ctx context.Context, fields models.AccountFields, opts ...Option) (*models.Account, error)

	// Update applies only the supplied fields to account and, unless
	// WithAutoSave(false) is given, persists them.
	Update(ctx context.Context, account *models.Account, fields models.AccountFields, opts ...Option) (bool, error)

	// Save persists every mutable field of account.
	Save(ctx context.Context, account *models.Account, opts ...Option) (bool, error)

	// VerifyPassword compares an already hashed password with the stored one.
	VerifyPassword(ctx context.Context, account *models.Account, password string, opts ...Option) (bool, error)

	// VerifyToken compares check.Token with the stored token of kind check.Type.
	VerifyToken(ctx context.Context, account *models.Account, check models.TokenCheck, opts ...Option) (bool, error)

	HashPassword(plaintext string) (string, error)
	GenerateToken() (string, error)

	// GetByUsernameFromCache looks username up in the cache only.
	GetByUsernameFromCache(ctx context.Context, username string, opts ...Option) (*models.Account, error)

	// GetByUsername and GetByID read the cache first and fall back to the
	// store, caching what they find.
	GetByUsername(ctx context.Context, username string, opts ...Option) (*models.Account, error)
	GetByID(ctx context.Context, id uint64, opts ...Option) (*models.Account, error)

	// WarmUp loads every stored account into the cache.
	WarmUp(ctx context.Context) (int, error)
}

// AuditLog records account operations. Entries are never changed.
type AuditLog interface {
	// Append validates and stores entry. It joins the transaction given by
	// WithTx, or commits on its own otherwise.
	Append(ctx context.Context, entry models.AccountLog, opts ...Option) (*models.AccountLog, error)

	// ListByAccount returns the entries of accountID, oldest first.
	ListByAccount(ctx context.Context, accountID uint64, opts ...Option) ([]models.AccountLog, error)
}

// RegistrationService implements the account use cases. Every mutation is
// paired with its audit entry in one transaction.
type RegistrationService interface {
	// Register creates an account named username and records REGISTER.
	Register(ctx context.Context, username string, opts ...Option) (*models.Account, error)

	// SignUp is Register with an initial plaintext password.
	SignUp(ctx context.Context, username, password string, opts ...Option) (*models.Account, error)

	// Login checks the plaintext password, rotates the session token and
	// records LOGIN.
	Login(ctx context.Context, username, password string) (*models.Account, error)

	// Logout rotates the session token and records LOGOUT.
	Logout(ctx context.Context, account *models.Account) error

	// ChangePassword checks oldPassword when a password is set, stores
	// newPassword and records PASSWORD.
	ChangePassword(ctx context.Context, account *models.Account, oldPassword, newPassword string) error

	// Authenticate loads accountID and verifies its session token.
	Authenticate(ctx context.Context, accountID uint64, token string) (*models.Account, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string

	// CheckHealth pings the storage and wraps any failure with
	// ErrStorageUnavailable.
	CheckHealth(ctx context.Context) error
}
