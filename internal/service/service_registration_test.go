// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-account-keeper/internal/cache"
	"github.com/MKhiriev/go-account-keeper/internal/crypto"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/mock"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type registrationMocks struct {
	transactor *mock.MockTransactor
	tx         *mock.MockTx
	accounts   *mock.MockAccountRepository
	entries    *mock.MockAccountLogRepository
	cache      *cache.AccountCache
}

// newTestRegistration wires the real identity manager and audit log over
// mocked repositories and a mocked transaction.
func newTestRegistration(t *testing.T, ctrl *gomock.Controller) (RegistrationService, registrationMocks) {
	t.Helper()
	m := registrationMocks{
		transactor: mock.NewMockTransactor(ctrl),
		tx:         mock.NewMockTx(ctrl),
		accounts:   mock.NewMockAccountRepository(ctrl),
		entries:    mock.NewMockAccountLogRepository(ctrl),
		cache:      cache.NewAccountCache(),
	}

	validator := validators.NewAccountValidator()
	identity := NewIdentityManager(m.accounts, m.cache, crypto.NewCredentialCodec(), validator, logger.Nop())
	audit := NewAuditLog(m.entries, validator, logger.Nop())

	return NewRegistrationService(m.transactor, identity, audit, logger.Nop()), m
}

// expectTx sets up a transaction whose hooks run on commit.
func (m registrationMocks) expectTx(ctx context.Context, commit bool) {
	var hooks []func()
	m.transactor.EXPECT().BeginTx(ctx).Return(m.tx, nil)
	m.tx.EXPECT().AfterCommit(gomock.Any()).Do(func(fn func()) { hooks = append(hooks, fn) }).AnyTimes()
	if commit {
		m.tx.EXPECT().Commit().DoAndReturn(func() error {
			for _, hook := range hooks {
				hook()
			}
			return nil
		})
	}
	m.tx.EXPECT().Rollback().Return(nil)
}

func TestRegistrationService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestRegistration(t, ctrl)
	ctx := context.Background()

	m.expectTx(ctx, true)
	gomock.InOrder(
		m.accounts.EXPECT().Insert(ctx, m.tx, models.AccountFields{Username: models.Ptr("bob")}).
			Return(models.Account{ID: 1, Username: models.Ptr("bob")}, nil),
		m.entries.EXPECT().Insert(ctx, m.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, entry models.AccountLog) (models.AccountLog, error) {
				assert.Equal(t, uint64(1), entry.AccountID)
				assert.Equal(t, uint64(1), entry.OpUserID)
				assert.Equal(t, models.OpTypeRegister, entry.OpType)
				assert.Equal(t, models.OpData{"username": "bob"}, entry.OpData)
				entry.ID = 1
				return entry, nil
			},
		),
	)

	account, err := svc.Register(ctx, "bob")

	require.NoError(t, err)
	assert.Equal(t, models.Account{ID: 1, Username: models.Ptr("bob")}, *account)
	_, found := m.cache.GetByUsername("bob")
	assert.True(t, found, "committed account must be cached")
}

func TestRegistrationService_Register_AuditFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestRegistration(t, ctrl)
	ctx := context.Background()
	auditErr := errors.New("audit insert failed")

	m.expectTx(ctx, false)
	m.accounts.EXPECT().Insert(ctx, m.tx, gomock.Any()).Return(models.Account{ID: 1, Username: models.Ptr("bob")}, nil)
	m.entries.EXPECT().Insert(ctx, m.tx, gomock.Any()).Return(models.AccountLog{}, auditErr)

	account, err := svc.Register(ctx, "bob")

	assert.Nil(t, account)
	assert.ErrorIs(t, err, auditErr)
	assert.Equal(t, 0, m.cache.Len(), "rolled back account must not be cached")
}

func TestRegistrationService_Register_DuplicateWritesNoAudit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestRegistration(t, ctrl)
	ctx := context.Background()

	m.cache.Add(models.Account{ID: 1, Username: models.Ptr("alice")})
	m.expectTx(ctx, false)

	_, err := svc.Register(ctx, "alice")

	assert.ErrorIs(t, err, ErrAccountUsernameExist)
}

func TestRegistrationService_Register_CancelledBeforeCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestRegistration(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.expectTx(ctx, false)
	m.accounts.EXPECT().Insert(ctx, m.tx, gomock.Any()).Return(models.Account{ID: 1, Username: models.Ptr("bob")}, nil)
	m.entries.EXPECT().Insert(ctx, m.tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, entry models.AccountLog) (models.AccountLog, error) {
			cancel()
			return entry, nil
		},
	)

	_, err := svc.Register(ctx, "bob")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, m.cache.Len())
}

func TestRegistrationService_Register_BeginFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestRegistration(t, ctrl)
	ctx := context.Background()
	beginErr := errors.New("pool exhausted")

	m.transactor.EXPECT().BeginTx(ctx).Return(nil, beginErr).Times(2)

	_, err := svc.Register(ctx, "bob")
	assert.ErrorIs(t, err, beginErr)

	account, err := svc.Register(ctx, "bob", Quietly())
	assert.NoError(t, err)
	assert.Nil(t, account)
}

func TestRegistrationService_Register_CallerTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestRegistration(t, ctrl)
	ctx := context.Background()

	// the caller owns the transaction: no begin, commit or rollback here
	m.tx.EXPECT().AfterCommit(gomock.Any())
	m.accounts.EXPECT().Insert(ctx, m.tx, gomock.Any()).Return(models.Account{ID: 3, Username: models.Ptr("dan")}, nil)
	m.entries.EXPECT().Insert(ctx, m.tx, gomock.Any()).Return(models.AccountLog{ID: 1}, nil)

	account, err := svc.Register(ctx, "dan", WithTx(m.tx))

	require.NoError(t, err)
	assert.Equal(t, uint64(3), account.ID)
}

func TestRegistrationService_Register_InvalidUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestRegistration(t, ctrl)
	ctx := context.Background()

	m.expectTx(ctx, false)

	_, err := svc.Register(ctx, "_bob")
	assert.ErrorIs(t, err, ErrAccountValidateFail)
}

func TestRegistrationService_Logout_FailureKeepsAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, m := newTestRegistration(t, ctrl)
	ctx := context.Background()

	m.expectTx(ctx, false)
	m.accounts.EXPECT().UpdateFields(ctx, m.tx, uint64(1), gomock.Any()).Return(nil)
	m.entries.EXPECT().Insert(ctx, m.tx, gomock.Any()).Return(models.AccountLog{}, errors.New("audit insert failed"))

	account := &models.Account{ID: 1, TokenA: tokenA}
	err := svc.Logout(ctx, account)

	assert.Error(t, err)
	assert.Equal(t, tokenA, account.TokenA, "account changes only after commit")
}

func TestRegistrationService_Logout_UnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestRegistration(t, ctrl)

	assert.ErrorIs(t, svc.Logout(context.Background(), nil), ErrAccountNotExist)
}

func TestRegistrationService_Authenticate_MalformedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestRegistration(t, ctrl)

	for _, token := range []string{"", "session", "A" + tokenA} {
		_, err := svc.Authenticate(context.Background(), 1, token)
		require.Error(t, err, token)
		assert.ErrorIs(t, err, ErrAccountTokenMismatch, token)

		var accountErr *AccountError
		require.True(t, errors.As(err, &accountErr))
		assert.Equal(t, ErrAccountTokenMismatch.Code(), accountErr.Code())
	}
}
