// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists accounts and their audit trail in a relational
// database (PostgreSQL through pgx, or SQLite).
//
// Every repository method takes a [Querier]. Passing an open [Tx] makes the
// statement part of that transaction; passing nil runs it on the pool and
// commits it on its own.
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/go-account-keeper/models"
)

// Querier is satisfied by *sql.DB, *sql.Tx and [Tx].
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tx is an open unit of work.
type Tx interface {
	Querier

	// Commit commits the transaction and then runs the AfterCommit hooks in
	// registration order.
	Commit() error

	// Rollback aborts the transaction and drops the hooks. Calling it after
	// Commit is a no-op.
	Rollback() error

	// AfterCommit registers fn to run only after a successful Commit. Hooks
	// of transactions on the same DB run in commit order.
	AfterCommit(fn func())
}

// Transactor opens transactions.
type Transactor interface {
	BeginTx(ctx context.Context) (Tx, error)
}

// Pinger reports whether the database answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// AccountRepository reads and writes the t_account table.
type AccountRepository interface {
	// Insert stores a new account built from the provided fields and returns
	// it with its assigned id. Missing password and token are stored empty.
	Insert(ctx context.Context, q Querier, fields models.AccountFields) (models.Account, error)

	// UpdateFields writes only the provided fields of account id.
	UpdateFields(ctx context.Context, q Querier, id uint64, fields models.AccountFields) error

	// Save writes every mutable field of account.
	Save(ctx context.Context, q Querier, account models.Account) error

	FindByID(ctx context.Context, q Querier, id uint64) (models.Account, error)
	FindByUsername(ctx context.Context, q Querier, username string) (models.Account, error)

	// Find returns every account matching filter, ordered by id.
	Find(ctx context.Context, q Querier, filter models.AccountFilter) ([]models.Account, error)
}

// AccountLogRepository appends to and reads the t_account_log table.
// Entries are immutable; there is no update or delete.
type AccountLogRepository interface {
	Insert(ctx context.Context, q Querier, entry models.AccountLog) (models.AccountLog, error)

	// FindByAccountID returns the entries of accountID, ordered by id.
	FindByAccountID(ctx context.Context, q Querier, accountID uint64) ([]models.AccountLog, error)
}

// ErrorClassificator inspects driver errors.
type ErrorClassificator interface {
	// Classify reports whether err is transient.
	Classify(err error) ErrorClassification

	// UniqueViolation reports whether err is a unique constraint violation
	// and, when the driver exposes it, the name of the violated constraint.
	UniqueViolation(err error) (constraint string, ok bool)
}
