// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
)

// registrationService composes the identity manager and the audit log.
// Every use case runs its account write and its audit append in one
// transaction.
type registrationService struct {
	transactor store.Transactor
	identity   IdentityManager
	audit      AuditLog

	logger *logger.Logger
}

func NewRegistrationService(transactor store.Transactor, identity IdentityManager, audit AuditLog, logger *logger.Logger) RegistrationService {
	return &registrationService{
		transactor: transactor,
		identity:   identity,
		audit:      audit,
		logger:     logger,
	}
}

func (s *registrationService) log(ctx context.Context, op string) *logger.Logger {
	return logger.FromContextOr(ctx, s.logger).Component("RegistrationService." + op)
}

func (s *registrationService) Register(ctx context.Context, username string, opts ...Option) (*models.Account, error) {
	o := newOptions(ctx, opts)
	log := s.log(ctx, "Register")
	log.Debug().Str("username", username).Msg("start")

	account, err := s.register(ctx, o, models.AccountFields{Username: &username})
	if err != nil {
		return nil, o.fail(log, err)
	}

	log.Info().Uint64("account_id", account.ID).Str("username", username).Msg("account registered")
	return account, nil
}

func (s *registrationService) SignUp(ctx context.Context, username, password string, opts ...Option) (*models.Account, error) {
	o := newOptions(ctx, opts)
	log := s.log(ctx, "SignUp")
	log.Debug().Str("username", username).Msg("start")

	hash, err := s.identity.HashPassword(password)
	if err != nil {
		return nil, o.fail(log, err)
	}

	account, err := s.register(ctx, o, models.AccountFields{Username: &username, Password: &hash})
	if err != nil {
		return nil, o.fail(log, err)
	}

	log.Info().Uint64("account_id", account.ID).Str("username", username).Msg("account signed up")
	return account, nil
}

func (s *registrationService) register(ctx context.Context, o options, fields models.AccountFields) (*models.Account, error) {
	var account *models.Account
	err := inTransaction(ctx, s.transactor, o, func(tx store.Tx) error {
		created, err := s.identity.Create(ctx, fields, WithTx(tx), WithCache(o.useCache))
		if err != nil {
			return err
		}

		_, err = s.audit.Append(ctx, models.AccountLog{
			AccountID: created.ID,
			OpUserID:  created.ID,
			OpType:    models.OpTypeRegister,
			OpData:    models.OpData{"username": created.UsernameValue()},
		}, WithTx(tx))
		if err != nil {
			return err
		}

		account = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *registrationService) Login(ctx context.Context, username, password string) (*models.Account, error) {
	log := s.log(ctx, "Login")
	log.Debug().Str("username", username).Msg("start")

	hash, err := s.identity.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account, err := s.identity.GetByUsername(ctx, username)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("login for unknown account")
		return nil, err
	}
	if _, err = s.identity.VerifyPassword(ctx, account, hash); err != nil {
		log.Warn().Err(err).Uint64("account_id", account.ID).Msg("wrong password")
		return nil, err
	}

	if err = s.rotateToken(ctx, account, models.OpTypeLogin); err != nil {
		return nil, err
	}

	log.Info().Uint64("account_id", account.ID).Msg("logged in")
	return account, nil
}

func (s *registrationService) Logout(ctx context.Context, account *models.Account) error {
	log := s.log(ctx, "Logout")

	if err := s.identity.CheckModel(account); err != nil {
		return err
	}
	if err := s.rotateToken(ctx, account, models.OpTypeLogout); err != nil {
		return err
	}

	log.Info().Uint64("account_id", account.ID).Msg("logged out")
	return nil
}

// rotateToken replaces the session token of account and records opType.
func (s *registrationService) rotateToken(ctx context.Context, account *models.Account, opType models.OpType) error {
	token, err := s.identity.GenerateToken()
	if err != nil {
		return err
	}

	return s.updateAndRecord(ctx, account, models.AccountFields{TokenA: &token}, opType)
}

// updateAndRecord applies fields to a copy of account and appends opType in
// one transaction. account is only changed once the transaction commits.
func (s *registrationService) updateAndRecord(ctx context.Context, account *models.Account, fields models.AccountFields, opType models.OpType) error {
	updated := account.Clone()

	err := inTransaction(ctx, s.transactor, options{}, func(tx store.Tx) error {
		if _, err := s.identity.Update(ctx, &updated, fields, WithTx(tx), WithAutoSave(true)); err != nil {
			return err
		}
		_, err := s.audit.Append(ctx, models.AccountLog{
			AccountID: updated.ID,
			OpUserID:  updated.ID,
			OpType:    opType,
		}, WithTx(tx))
		return err
	})
	if err != nil {
		return err
	}

	*account = updated
	return nil
}

func (s *registrationService) ChangePassword(ctx context.Context, account *models.Account, oldPassword, newPassword string) error {
	log := s.log(ctx, "ChangePassword")

	if err := s.identity.CheckModel(account); err != nil {
		return err
	}

	if account.HasPassword() {
		oldHash, err := s.identity.HashPassword(oldPassword)
		if err != nil {
			return err
		}
		if _, err = s.identity.VerifyPassword(ctx, account, oldHash); err != nil {
			log.Warn().Err(err).Uint64("account_id", account.ID).Msg("wrong old password")
			return err
		}
	}

	newHash, err := s.identity.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err = s.updateAndRecord(ctx, account, models.AccountFields{Password: &newHash}, models.OpTypePassword); err != nil {
		return err
	}

	log.Info().Uint64("account_id", account.ID).Msg("password changed")
	return nil
}

// Authenticate resolves the account and checks the presented session token.
// A token that is not even shaped like a session token is reported as a
// mismatch, never as a validation failure of the caller's input.
func (s *registrationService) Authenticate(ctx context.Context, accountID uint64, token string) (*models.Account, error) {
	if err := validators.CheckValue("token", token, validators.TokenSpec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAccountTokenMismatch, err)
	}
	account, err := s.identity.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if _, err = s.identity.VerifyToken(ctx, account, models.TokenCheck{Type: models.TokenTypeA, Token: token}); err != nil {
		return nil, err
	}
	return account, nil
}
