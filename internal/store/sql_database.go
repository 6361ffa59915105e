// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/migrations"
)

// Dialect is the database/sql driver name, also used as the goose dialect.
type Dialect string

const (
	DialectPostgres Dialect = "pgx"
	DialectSQLite   Dialect = "sqlite3"
)

const (
	tableAccount    = "t_account"
	tableAccountLog = "t_account_log"
)

// DB is a connection pool bound to one dialect.
type DB struct {
	*sql.DB
	dialect            Dialect
	isolation          sql.IsolationLevel
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	// commitMu orders commits together with their after-commit hooks.
	commitMu sync.Mutex
}

// NewDB wraps an already opened pool. It is used by the dialect connectors and
// by tests that hand in a sqlmock connection.
func NewDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}

	switch dialect {
	case DialectPostgres:
		db.isolation = sql.LevelReadCommitted
		db.errorClassificator = NewPostgresErrorClassifier()
	case DialectSQLite:
		db.isolation = sql.LevelDefault
		db.errorClassificator = NewSQLiteErrorClassifier()
	}

	return db
}

// NewConnect opens the database named by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch Dialect(cfg.Driver) {
	case DialectPostgres, "":
		return NewConnectPostgres(ctx, cfg, log)
	case DialectSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		log.Error().Str("func", "NewConnect").Str("driver", cfg.Driver).Msg("unsupported database driver")
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Dialect returns the driver name the pool was opened with.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies every pending schema migration for the dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// BeginTx opens a transaction with the dialect's default isolation level.
func (db *DB) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := db.DB.BeginTx(ctx, &sql.TxOptions{Isolation: db.isolation})
	if err != nil {
		logger.FromContextOr(ctx, db.logger).Err(err).Str("func", "DB.BeginTx").Msg("failed to begin transaction")
		return nil, db.persistenceError("DB.BeginTx", ErrBeginningTransaction, err)
	}

	return &sqlTx{Tx: tx, db: db}, nil
}

func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

func (db *DB) uniqueViolation(err error) (string, bool) {
	if db.errorClassificator == nil {
		return "", false
	}
	return db.errorClassificator.UniqueViolation(err)
}

// querier returns q, falling back to the pool when q is nil.
func (db *DB) querier(q Querier) Querier {
	if q == nil {
		return db.DB
	}
	return q
}
