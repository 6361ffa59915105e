// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
)

type auditLog struct {
	entries   store.AccountLogRepository
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

func NewAuditLog(entries store.AccountLogRepository, validator validators.Validator, logger *logger.Logger) AuditLog {
	return &auditLog{
		entries:   entries,
		validator: validator,
		now:       time.Now,
		logger:    logger,
	}
}

// Append fills the defaults before validating: the timestamp is now, opData
// is empty, ip and transaction id come from the request metadata in ctx.
func (a *auditLog) Append(ctx context.Context, entry models.AccountLog, opts ...Option) (*models.AccountLog, error) {
	o := newOptions(ctx, opts)
	log := logger.FromContextOr(ctx, a.logger).Component("AuditLog.Append")
	log.Debug().
		Uint64("account_id", entry.AccountID).
		Uint64("op_user_id", entry.OpUserID).
		Stringer("op_type", entry.OpType).
		Msg("start")

	if entry.OpTimestamp.IsZero() {
		entry.OpTimestamp = a.now().UTC()
	}
	if entry.OpData == nil {
		entry.OpData = models.OpData{}
	}
	meta := utils.RequestMetaFromContext(ctx)
	if entry.IP == "" {
		entry.IP = meta.IP
	}
	if entry.TransactionID == "" {
		entry.TransactionID = meta.TransactionID
	}

	if err := a.validator.Validate(ctx, entry); err != nil {
		return nil, o.fail(log, validationFailed(err))
	}

	stored, err := a.entries.Insert(ctx, o.querier(), entry)
	if err != nil {
		return nil, o.fail(log, err)
	}

	log.Debug().Uint64("log_id", stored.ID).Msg("finish")
	return &stored, nil
}

func (a *auditLog) ListByAccount(ctx context.Context, accountID uint64, opts ...Option) ([]models.AccountLog, error) {
	o := newOptions(ctx, opts)
	log := logger.FromContextOr(ctx, a.logger).Component("AuditLog.ListByAccount")

	if err := a.validator.Validate(ctx, models.AccountLog{AccountID: accountID}, validators.FieldAccountID); err != nil {
		return nil, o.fail(log, validationFailed(err))
	}

	entries, err := a.entries.FindByAccountID(ctx, o.querier(), accountID)
	if err != nil {
		return nil, o.fail(log, err)
	}
	return entries, nil
}
