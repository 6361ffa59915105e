// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
)

// accountRepository is the SQL implementation of [AccountRepository].
type accountRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] over db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a new account. A unique violation on the username index
// is reported as [ErrUsernameAlreadyExists]; every other failure is a
// [*PersistenceError].
func (r *accountRepository) Insert(ctx context.Context, q Querier, fields models.AccountFields) (models.Account, error) {
	const op = "accountRepository.Insert"
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := buildInsertAccountQuery(r.db.builder(), fields)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error building insert query")
		return models.Account{}, r.db.persistenceError(op, ErrBuildingSQLQuery, err)
	}

	var id uint64
	if err = r.db.querier(q).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if constraint, ok := r.db.uniqueViolation(err); ok {
			log.Warn().Str("func", op).Str("constraint", constraint).Msg("username already exists")
			return models.Account{}, ErrUsernameAlreadyExists
		}
		log.Err(err).Str("func", op).Msg("error inserting account")
		return models.Account{}, r.db.persistenceError(op, ErrExecutingQuery, err)
	}

	account := models.Account{ID: id}
	fields.ApplyTo(&account)

	log.Debug().Str("func", op).Uint64("account_id", id).Msg("account inserted")
	return account, nil
}

func (r *accountRepository) UpdateFields(ctx context.Context, q Querier, id uint64, fields models.AccountFields) error {
	const op = "accountRepository.UpdateFields"
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := buildUpdateAccountFieldsQuery(r.db.builder(), id, fields)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error building update query")
		return r.db.persistenceError(op, ErrBuildingSQLQuery, err)
	}
	if query == "" {
		return nil
	}

	return r.execUpdate(ctx, q, op, id, query, args)
}

func (r *accountRepository) Save(ctx context.Context, q Querier, account models.Account) error {
	const op = "accountRepository.Save"
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := buildSaveAccountQuery(r.db.builder(), account)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error building save query")
		return r.db.persistenceError(op, ErrBuildingSQLQuery, err)
	}

	return r.execUpdate(ctx, q, op, account.ID, query, args)
}

func (r *accountRepository) execUpdate(ctx context.Context, q Querier, op string, id uint64, query string, args []any) error {
	log := logger.FromContextOr(ctx, r.logger)

	result, err := r.db.querier(q).ExecContext(ctx, query, args...)
	if err != nil {
		if constraint, ok := r.db.uniqueViolation(err); ok {
			log.Warn().Str("func", op).Str("constraint", constraint).Uint64("account_id", id).Msg("username already exists")
			return ErrUsernameAlreadyExists
		}
		log.Err(err).Str("func", op).Uint64("account_id", id).Msg("error updating account")
		return r.db.persistenceError(op, ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", op).Msg("error reading affected rows")
		return r.db.persistenceError(op, ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Warn().Str("func", op).Uint64("account_id", id).Msg("account not found")
		return ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) FindByID(ctx context.Context, q Querier, id uint64) (models.Account, error) {
	return r.findOne(ctx, q, "accountRepository.FindByID", models.AccountFilter{IDs: []uint64{id}, Limit: 1})
}

func (r *accountRepository) FindByUsername(ctx context.Context, q Querier, username string) (models.Account, error) {
	return r.findOne(ctx, q, "accountRepository.FindByUsername", models.AccountFilter{Username: &username, Limit: 1})
}

func (r *accountRepository) findOne(ctx context.Context, q Querier, op string, filter models.AccountFilter) (models.Account, error) {
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := buildSelectAccountsQuery(r.db.builder(), filter)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error building select query")
		return models.Account{}, r.db.persistenceError(op, ErrBuildingSQLQuery, err)
	}

	account, err := scanAccount(r.db.querier(q).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Str("func", op).Msg("error scanning account")
		return models.Account{}, r.db.persistenceError(op, ErrScanningRow, err)
	}

	return account, nil
}

func (r *accountRepository) Find(ctx context.Context, q Querier, filter models.AccountFilter) ([]models.Account, error) {
	const op = "accountRepository.Find"
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := buildSelectAccountsQuery(r.db.builder(), filter)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error building select query")
		return nil, r.db.persistenceError(op, ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.querier(q).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error querying accounts")
		return nil, r.db.persistenceError(op, ErrExecutingQuery, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", op).Msg("error scanning account row")
			return nil, r.db.persistenceError(op, ErrScanningRows, scanErr)
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", op).Msg("error iterating account rows")
		return nil, r.db.persistenceError(op, ErrScanningRows, err)
	}

	log.Debug().Str("func", op).Int("count", len(accounts)).Msg("accounts found")
	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		account  models.Account
		username sql.NullString
	)
	if err := row.Scan(&account.ID, &username, &account.Password, &account.TokenA); err != nil {
		return models.Account{}, err
	}
	if username.Valid {
		account.Username = &username.String
	}
	return account, nil
}
