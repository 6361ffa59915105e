// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-account-keeper/internal/cache"
	"github.com/MKhiriev/go-account-keeper/internal/crypto"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
)

var _ EntityRepository[models.Account] = (*identityManager)(nil)

// identityManager is the concrete implementation of IdentityManager.
type identityManager struct {
	accounts  store.AccountRepository
	cache     *cache.AccountCache
	codec     crypto.CredentialCodec
	validator validators.Validator

	logger *logger.Logger
}

// NewIdentityManager constructs an IdentityManager. accountCache is owned by
// the caller and may be shared with other components of the process.
func NewIdentityManager(
	accounts store.AccountRepository,
	accountCache *cache.AccountCache,
	codec crypto.CredentialCodec,
	validator validators.Validator,
	logger *logger.Logger,
) IdentityManager {
	return &identityManager{
		accounts:  accounts,
		cache:     accountCache,
		codec:     codec,
		validator: validator,
		logger:    logger,
	}
}

func (m *identityManager) log(ctx context.Context, op string) *logger.Logger {
	return logger.FromContextOr(ctx, m.logger).Component("IdentityManager." + op)
}

func (m *identityManager) CheckModel(account *models.Account) error {
	if account == nil {
		return ErrAccountNotExist
	}
	if err := m.validator.Validate(context.Background(), *account, validators.FieldID); err != nil {
		return fmt.Errorf("%w: %w", ErrAccountNotExist, err)
	}
	return nil
}

func (m *identityManager) CheckExists(account *models.Account) error {
	return m.CheckModel(account)
}

func (m *identityManager) AddToCache(account models.Account) {
	m.cache.Add(account)
}

func (m *identityManager) QueryCache(filter func(models.Account) bool) []models.Account {
	return m.cache.QueryByFilter(filter)
}

func (m *identityManager) Create(ctx context.Context, fields models.AccountFields, opts ...Option) (*models.Account, error) {
	o := newOptions(ctx, opts)
	log := m.log(ctx, "Create")
	log.Debug().
		Str("username", stringOrEmpty(fields.Username)).
		Bool("has_password", fields.Password != nil).
		Bool("has_token", fields.TokenA != nil).
		Bool("use_cache", o.useCache).
		Msg("start")

	account, err := m.create(ctx, o, fields)
	if err != nil {
		return nil, o.fail(log, err)
	}

	log.Debug().Uint64("account_id", account.ID).Msg("finish")
	return account, nil
}

func (m *identityManager) create(ctx context.Context, o options, fields models.AccountFields) (*models.Account, error) {
	if err := m.validator.Validate(ctx, fields); err != nil {
		return nil, validationFailed(err)
	}

	// fast reject only, the unique index decides
	if o.useCache && fields.Username != nil {
		if _, found := m.cache.GetByUsername(*fields.Username); found {
			return nil, ErrAccountUsernameExist
		}
	}

	account, err := m.accounts.Insert(ctx, o.querier(), fields)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if o.useCache {
		cached := account.Clone()
		o.afterCommit(func() { m.cache.Add(cached) })
	}

	return &account, nil
}

func (m *identityManager) Update(ctx context.Context, account *models.Account, fields models.AccountFields, opts ...Option) (bool, error) {
	o := newOptions(ctx, opts)
	log := m.log(ctx, "Update")
	log.Debug().
		Bool("auto_save", o.autoSave).
		Bool("username", fields.Username != nil).
		Bool("password", fields.Password != nil).
		Bool("token", fields.TokenA != nil).
		Msg("start")

	if err := m.update(ctx, o, account, fields); err != nil {
		return false, o.fail(log, err)
	}

	log.Debug().Uint64("account_id", account.ID).Msg("finish")
	return true, nil
}

func (m *identityManager) update(ctx context.Context, o options, account *models.Account, fields models.AccountFields) error {
	if err := m.CheckModel(account); err != nil {
		return err
	}
	if err := m.validator.Validate(ctx, fields); err != nil {
		return validationFailed(err)
	}

	if o.useCache && fields.Username != nil {
		if other, found := m.cache.GetByUsername(*fields.Username); found && other.ID != account.ID {
			return ErrAccountUsernameExist
		}
	}

	updated := account.Clone()
	fields.ApplyTo(&updated)

	if o.autoSave {
		if err := m.accounts.UpdateFields(ctx, o.querier(), updated.ID, fields); err != nil {
			return mapStoreError(err)
		}
		if o.useCache {
			cached := updated.Clone()
			o.afterCommit(func() { m.cache.Add(cached) })
		}
	}

	*account = updated
	return nil
}

func (m *identityManager) Save(ctx context.Context, account *models.Account, opts ...Option) (bool, error) {
	o := newOptions(ctx, opts)
	log := m.log(ctx, "Save")
	log.Debug().Msg("start")

	if err := m.save(ctx, o, account); err != nil {
		return false, o.fail(log, err)
	}

	log.Debug().Uint64("account_id", account.ID).Msg("finish")
	return true, nil
}

func (m *identityManager) save(ctx context.Context, o options, account *models.Account) error {
	if err := m.CheckModel(account); err != nil {
		return err
	}
	if err := m.validator.Validate(ctx, *account, validators.FieldUsername, validators.FieldPassword, validators.FieldTokenA); err != nil {
		return validationFailed(err)
	}

	if err := m.accounts.Save(ctx, o.querier(), *account); err != nil {
		return mapStoreError(err)
	}

	if o.useCache {
		cached := account.Clone()
		o.afterCommit(func() { m.cache.Add(cached) })
	}
	return nil
}

func (m *identityManager) VerifyPassword(ctx context.Context, account *models.Account, password string, opts ...Option) (bool, error) {
	o := newOptions(ctx, opts)
	log := m.log(ctx, "VerifyPassword")

	err := m.CheckModel(account)
	if err == nil {
		err = m.validator.Validate(ctx, models.AccountFields{Password: &password}, validators.FieldPassword)
		if err != nil {
			err = validationFailed(err)
		}
	}
	if err == nil && !equalSecrets(account.Password, password) {
		err = ErrAccountPasswordMismatch
	}
	if err != nil {
		return false, o.fail(log, err)
	}

	log.Debug().Uint64("account_id", account.ID).Msg("password verified")
	return true, nil
}

func (m *identityManager) VerifyToken(ctx context.Context, account *models.Account, check models.TokenCheck, opts ...Option) (bool, error) {
	o := newOptions(ctx, opts)
	log := m.log(ctx, "VerifyToken")

	err := m.CheckModel(account)
	if err == nil {
		if err = m.validator.Validate(ctx, check); err != nil {
			err = validationFailed(err)
		}
	}
	if err == nil {
		var stored string
		switch check.Type {
		case models.TokenTypeA:
			stored = account.TokenA
		}
		if !equalSecrets(stored, check.Token) {
			err = ErrAccountTokenMismatch
		}
	}
	if err != nil {
		return false, o.fail(log, err)
	}

	log.Debug().Uint64("account_id", account.ID).Msg("token verified")
	return true, nil
}

func (m *identityManager) HashPassword(plaintext string) (string, error) {
	hash, err := m.codec.HashCredential(plaintext)
	if err != nil {
		if errors.Is(err, validators.ErrValidation) {
			return "", validationFailed(err)
		}
		return "", err
	}
	return hash, nil
}

func (m *identityManager) GenerateToken() (string, error) {
	return m.codec.GenerateToken()
}

func (m *identityManager) GetByUsernameFromCache(ctx context.Context, username string, opts ...Option) (*models.Account, error) {
	o := newOptions(ctx, opts)
	log := m.log(ctx, "GetByUsernameFromCache")

	if err := m.validateUsername(ctx, username); err != nil {
		return nil, o.fail(log, err)
	}

	account, found := m.cache.GetByUsername(username)
	if !found {
		if o.checkExists {
			return nil, o.fail(log, ErrAccountNotExist)
		}
		return nil, nil
	}
	return &account, nil
}

func (m *identityManager) GetByUsername(ctx context.Context, username string, opts ...Option) (*models.Account, error) {
	o := newOptions(ctx, opts)
	log := m.log(ctx, "GetByUsername")

	if err := m.validateUsername(ctx, username); err != nil {
		return nil, o.fail(log, err)
	}

	if o.useCache {
		if account, found := m.cache.GetByUsername(username); found {
			return &account, nil
		}
	}

	account, err := m.accounts.FindByUsername(ctx, o.querier(), username)
	return m.loaded(log, o, account, err)
}

func (m *identityManager) GetByID(ctx context.Context, id uint64, opts ...Option) (*models.Account, error) {
	o := newOptions(ctx, opts)
	log := m.log(ctx, "GetByID")

	if err := m.CheckModel(&models.Account{ID: id}); err != nil {
		return nil, o.fail(log, err)
	}

	if o.useCache {
		if account, found := m.cache.Get(id); found {
			return &account, nil
		}
	}

	account, err := m.accounts.FindByID(ctx, o.querier(), id)
	return m.loaded(log, o, account, err)
}

// loaded finishes a store lookup: it maps a miss according to checkExists
// and caches a hit.
func (m *identityManager) loaded(log *logger.Logger, o options, account models.Account, err error) (*models.Account, error) {
	if errors.Is(err, store.ErrAccountNotFound) {
		if o.checkExists {
			return nil, o.fail(log, ErrAccountNotExist)
		}
		return nil, nil
	}
	if err != nil {
		return nil, o.fail(log, err)
	}

	if o.useCache {
		cached := account.Clone()
		o.afterCommit(func() { m.cache.AddIfAbsent(cached) })
	}
	return &account, nil
}

func (m *identityManager) WarmUp(ctx context.Context) (int, error) {
	log := m.log(ctx, "WarmUp")

	accounts, err := m.accounts.Find(ctx, nil, models.AccountFilter{})
	if err != nil {
		log.Err(err).Msg("error loading accounts")
		return 0, err
	}
	for _, account := range accounts {
		m.cache.Add(account)
	}

	log.Info().Int("count", len(accounts)).Msg("account cache warmed up")
	return len(accounts), nil
}

func (m *identityManager) validateUsername(ctx context.Context, username string) error {
	if err := m.validator.Validate(ctx, models.AccountFields{Username: &username}, validators.FieldUsername); err != nil {
		return validationFailed(err)
	}
	return nil
}

// mapStoreError translates store sentinels into account errors.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return fmt.Errorf("%w: %w", ErrAccountUsernameExist, err)
	case errors.Is(err, store.ErrAccountNotFound):
		return fmt.Errorf("%w: %w", ErrAccountNotExist, err)
	default:
		return err
	}
}

// equalSecrets reports whether stored is set and equal to given.
func equalSecrets(stored, given string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
