// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"errors"
	"sync"
)

// sqlTx is the database/sql implementation of [Tx].
type sqlTx struct {
	*sql.Tx
	db *DB

	mu    sync.Mutex
	hooks []func()
	done  bool
}

func (t *sqlTx) AfterCommit(fn func()) {
	if fn == nil {
		return
	}

	t.mu.Lock()
	t.hooks = append(t.hooks, fn)
	t.mu.Unlock()
}

// Commit commits the transaction and runs its hooks in registration order.
// Commits of one DB are serialized with their hooks, so hooks of two
// transactions run in the order the transactions committed.
func (t *sqlTx) Commit() error {
	t.db.commitMu.Lock()
	defer t.db.commitMu.Unlock()

	if err := t.Tx.Commit(); err != nil {
		t.drop()
		return t.db.persistenceError("sqlTx.Commit", ErrCommitingTransaction, err)
	}

	t.mu.Lock()
	hooks := t.hooks
	t.hooks = nil
	t.done = true
	t.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	return nil
}

func (t *sqlTx) Rollback() error {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done {
		return nil
	}

	t.drop()
	if err := t.Tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return t.db.persistenceError("sqlTx.Rollback", ErrExecutingQuery, err)
	}
	return nil
}

func (t *sqlTx) drop() {
	t.mu.Lock()
	t.hooks = nil
	t.done = true
	t.mu.Unlock()
}
