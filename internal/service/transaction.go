// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/internal/store"
)

// inTransaction runs fn in the caller's transaction when o carries one.
// Otherwise it opens a transaction, commits it when fn succeeds and rolls it
// back on any failure, including a context cancelled before commit.
func inTransaction(ctx context.Context, transactor store.Transactor, o options, fn func(tx store.Tx) error) error {
	if o.tx != nil {
		return fn(o.tx)
	}

	tx, err := transactor.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	return tx.Commit()
}
