// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
)

// CodePersistenceError is the numeric code carried by every PersistenceError.
const CodePersistenceError = 50001

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an insert or update would give
	// two accounts the same username.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrAccountNotFound is returned when a lookup or update targets an
	// account id or username that is not stored.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrUnsupportedDriver is returned when the configured driver name has no
	// connector.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. They are wrapped inside a
// [PersistenceError] together with the driver error.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrEncodingOpData       = errors.New("failed to encode op data")
)

// PersistenceError wraps any storage I/O failure.
type PersistenceError struct {
	// Op names the repository operation, e.g. "accountRepository.Insert".
	Op string
	// Err holds the stage sentinel joined with the driver error.
	Err error
	// Retryable is set when the driver error is transient.
	Retryable bool
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Code returns CodePersistenceError.
func (e *PersistenceError) Code() int {
	return CodePersistenceError
}

// persistenceError builds a *PersistenceError for op, joining stage with the
// driver error and classifying it.
func (db *DB) persistenceError(op string, stage, err error) error {
	return &PersistenceError{
		Op:        op,
		Err:       fmt.Errorf("%w: %w", stage, err),
		Retryable: db.classify(err) == Retryable,
	}
}
