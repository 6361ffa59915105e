// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-account-keeper/models"
)

var (
	accountColumns    = []string{"id", "username", "password", "token_a"}
	accountLogColumns = []string{"id", "account_id", "op_user_id", "op_type", "op_timestamp", "op_data", "ip", "transaction_id"}
)

func buildInsertAccountQuery(b sq.StatementBuilderType, fields models.AccountFields) (string, []any, error) {
	password, token := "", ""
	if fields.Password != nil {
		password = *fields.Password
	}
	if fields.TokenA != nil {
		token = *fields.TokenA
	}

	return b.Insert(tableAccount).
		Columns("username", "password", "token_a").
		Values(fields.Username, password, token).
		Suffix("RETURNING id").
		ToSql()
}

// buildUpdateAccountFieldsQuery returns an empty query when no field is set.
func buildUpdateAccountFieldsQuery(b sq.StatementBuilderType, id uint64, fields models.AccountFields) (string, []any, error) {
	if fields.IsEmpty() {
		return "", nil, nil
	}

	update := b.Update(tableAccount)
	if fields.Username != nil {
		update = update.Set("username", *fields.Username)
	}
	if fields.Password != nil {
		update = update.Set("password", *fields.Password)
	}
	if fields.TokenA != nil {
		update = update.Set("token_a", *fields.TokenA)
	}

	return update.Where(sq.Eq{"id": id}).ToSql()
}

func buildSaveAccountQuery(b sq.StatementBuilderType, account models.Account) (string, []any, error) {
	return b.Update(tableAccount).
		Set("username", account.Username).
		Set("password", account.Password).
		Set("token_a", account.TokenA).
		Where(sq.Eq{"id": account.ID}).
		ToSql()
}

func buildSelectAccountsQuery(b sq.StatementBuilderType, filter models.AccountFilter) (string, []any, error) {
	query := b.Select(accountColumns...).From(tableAccount)

	if len(filter.IDs) > 0 {
		query = query.Where(sq.Eq{"id": filter.IDs})
	}
	if filter.Username != nil {
		query = query.Where(sq.Eq{"username": *filter.Username})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	return query.OrderBy("id").ToSql()
}

func buildInsertAccountLogQuery(b sq.StatementBuilderType, entry models.AccountLog) (string, []any, error) {
	opData := entry.OpData
	if opData == nil {
		opData = models.OpData{}
	}
	encoded, err := json.Marshal(opData)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrEncodingOpData, err)
	}

	return b.Insert(tableAccountLog).
		Columns("account_id", "op_user_id", "op_type", "op_timestamp", "op_data", "ip", "transaction_id").
		Values(entry.AccountID, entry.OpUserID, int(entry.OpType), entry.OpTimestamp.UTC(), string(encoded), entry.IP, entry.TransactionID).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectAccountLogsQuery(b sq.StatementBuilderType, accountID uint64) (string, []any, error) {
	return b.Select(accountLogColumns...).
		From(tableAccountLog).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("id").
		ToSql()
}
