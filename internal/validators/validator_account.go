// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldID            = "id"
	FieldUsername      = "username"
	FieldPassword      = "password"
	FieldTokenA        = "tokenA"
	FieldTokenType     = "type"
	FieldToken         = "token"
	FieldAccountID     = "accountId"
	FieldOpUserID      = "opUserId"
	FieldOpType        = "opType"
	FieldOpData        = "opData"
	FieldIP            = "ip"
	FieldTransactionID = "transactionId"
)

// AccountValidator validates account inputs and audit entries.
type AccountValidator struct {
}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer forms
// are accepted:
//   - models.AccountFields: partial create/update input, every field optional
//   - models.Account: a persisted account (default: id only)
//   - models.TokenCheck: a session token check
//   - models.AccountLog: an audit entry (default: every field)
//
// Returns ErrUnsupportedType for anything else.
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AccountFields:
		return v.validateFields(value, fields...)
	case *models.AccountFields:
		return v.validateFields(*value, fields...)

	case models.Account:
		return v.validateAccount(value, fields...)
	case *models.Account:
		return v.validateAccount(*value, fields...)

	case models.TokenCheck:
		return v.validateTokenCheck(value, fields...)
	case *models.TokenCheck:
		return v.validateTokenCheck(*value, fields...)

	case models.AccountLog:
		return v.validateAccountLog(value, fields...)
	case *models.AccountLog:
		return v.validateAccountLog(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateFields(input models.AccountFields, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldTokenA}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldUsername:
			err = CheckValue(f, Optional(input.Username), UsernameSpec.Optional())
		case FieldPassword:
			err = CheckValue(f, Optional(input.Password), PasswordSpec.Optional())
		case FieldTokenA:
			err = CheckValue(f, Optional(input.TokenA), TokenSpec.Optional())
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateAccount checks a whole account. Password and TokenA are only
// checked once set, since a fresh account carries empty values for both.
func (v *AccountValidator) validateAccount(account models.Account, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldID:
			err = CheckValue(f, account.ID, IDSpec)
		case FieldUsername:
			err = CheckValue(f, account.Username, UsernameSpec)
		case FieldPassword:
			if account.Password != "" {
				err = CheckValue(f, account.Password, PasswordSpec)
			}
		case FieldTokenA:
			if account.TokenA != "" {
				err = CheckValue(f, account.TokenA, TokenSpec)
			}
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AccountValidator) validateTokenCheck(check models.TokenCheck, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTokenType, FieldToken}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldTokenType:
			err = CheckValue(f, check.Type, TokenTypeSpec)
		case FieldToken:
			err = CheckValue(f, check.Token, TokenSpec)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AccountValidator) validateAccountLog(entry models.AccountLog, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccountID, FieldOpUserID, FieldOpType, FieldOpData, FieldIP, FieldTransactionID}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldAccountID:
			err = CheckValue(f, entry.AccountID, IDSpec)
		case FieldOpUserID:
			err = CheckValue(f, entry.OpUserID, IDSpec)
		case FieldOpType:
			err = CheckValue(f, entry.OpType, OpTypeSpec)
		case FieldOpData:
			err = CheckValue(f, map[string]any(entry.OpData), OpDataSpec.Nullable())
		case FieldIP:
			err = CheckValue(f, entry.IP, IPSpec)
		case FieldTransactionID:
			err = CheckValue(f, entry.TransactionID, TransactionIDSpec)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}
