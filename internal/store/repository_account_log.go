// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
)

type accountLogRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewAccountLogRepository(db *DB, logger *logger.Logger) AccountLogRepository {
	logger.Debug().Msg("creating account log repository")
	return &accountLogRepository{
		db:     db,
		logger: logger,
	}
}

// Insert appends entry and returns it with its assigned id.
// A nil OpData is stored as an empty JSON object.
func (r *accountLogRepository) Insert(ctx context.Context, q Querier, entry models.AccountLog) (models.AccountLog, error) {
	const op = "accountLogRepository.Insert"
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := buildInsertAccountLogQuery(r.db.builder(), entry)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error building insert query")
		return models.AccountLog{}, r.db.persistenceError(op, ErrBuildingSQLQuery, err)
	}

	if err = r.db.querier(q).QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
		log.Err(err).Str("func", op).Uint64("account_id", entry.AccountID).Msg("error inserting account log")
		return models.AccountLog{}, r.db.persistenceError(op, ErrExecutingQuery, err)
	}
	if entry.OpData == nil {
		entry.OpData = models.OpData{}
	}

	log.Debug().
		Str("func", op).
		Uint64("log_id", entry.ID).
		Uint64("account_id", entry.AccountID).
		Stringer("op_type", entry.OpType).
		Msg("account log inserted")
	return entry, nil
}

func (r *accountLogRepository) FindByAccountID(ctx context.Context, q Querier, accountID uint64) ([]models.AccountLog, error) {
	const op = "accountLogRepository.FindByAccountID"
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := buildSelectAccountLogsQuery(r.db.builder(), accountID)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error building select query")
		return nil, r.db.persistenceError(op, ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.querier(q).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", op).Msg("error querying account logs")
		return nil, r.db.persistenceError(op, ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.AccountLog, 0)
	for rows.Next() {
		entry, scanErr := scanAccountLog(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", op).Msg("error scanning account log row")
			return nil, r.db.persistenceError(op, ErrScanningRows, scanErr)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", op).Msg("error iterating account log rows")
		return nil, r.db.persistenceError(op, ErrScanningRows, err)
	}

	return entries, nil
}

func scanAccountLog(row rowScanner) (models.AccountLog, error) {
	var (
		entry  models.AccountLog
		opType int
		opData []byte
	)
	if err := row.Scan(&entry.ID, &entry.AccountID, &entry.OpUserID, &opType, &entry.OpTimestamp, &opData, &entry.IP, &entry.TransactionID); err != nil {
		return models.AccountLog{}, err
	}

	entry.OpType = models.OpType(opType)
	entry.OpTimestamp = entry.OpTimestamp.UTC()
	entry.OpData = models.OpData{}
	if len(opData) > 0 {
		if err := json.Unmarshal(opData, &entry.OpData); err != nil {
			return models.AccountLog{}, fmt.Errorf("error decoding op data: %w", err)
		}
	}

	return entry, nil
}
