// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_AccountLifecycle(t *testing.T) {
	db := newSQLiteDB(t)
	s := NewStorages(db, logger.Nop())
	ctx := context.Background()

	bob, err := s.AccountRepository.Insert(ctx, nil, models.AccountFields{Username: models.Ptr("bob")})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), bob.ID)

	anon, err := s.AccountRepository.Insert(ctx, nil, models.AccountFields{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), anon.ID)

	// several accounts may have no username
	_, err = s.AccountRepository.Insert(ctx, nil, models.AccountFields{})
	require.NoError(t, err)

	_, err = s.AccountRepository.Insert(ctx, nil, models.AccountFields{Username: models.Ptr("bob")})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	require.NoError(t, s.AccountRepository.UpdateFields(ctx, nil, bob.ID, models.AccountFields{TokenA: models.Ptr(testToken)}))

	got, err := s.AccountRepository.FindByUsername(ctx, nil, "bob")
	require.NoError(t, err)
	assert.Equal(t, testToken, got.TokenA)
	assert.Empty(t, got.Password)

	err = s.AccountRepository.UpdateFields(ctx, nil, anon.ID, models.AccountFields{Username: models.Ptr("bob")})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	_, err = s.AccountRepository.FindByID(ctx, nil, 100)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	all, err := s.AccountRepository.Find(ctx, nil, models.AccountFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Nil(t, all[1].Username)
}

func TestSQLite_RollbackDiscardsWrites(t *testing.T) {
	db := newSQLiteDB(t)
	s := NewStorages(db, logger.Nop())
	ctx := context.Background()

	tx, err := s.Transactor.BeginTx(ctx)
	require.NoError(t, err)

	account, err := s.AccountRepository.Insert(ctx, tx, models.AccountFields{Username: models.Ptr("carol")})
	require.NoError(t, err)
	_, err = s.AccountLogRepository.Insert(ctx, tx, models.AccountLog{
		AccountID: account.ID,
		OpUserID:  account.ID,
		OpType:    models.OpTypeRegister,
		OpData:    models.OpData{"username": "carol"},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	_, err = s.AccountRepository.FindByUsername(ctx, nil, "carol")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	entries, err := s.AccountLogRepository.FindByAccountID(ctx, nil, account.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLite_AccountLogRoundTrip(t *testing.T) {
	db := newSQLiteDB(t)
	s := NewStorages(db, logger.Nop())
	ctx := context.Background()
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	account, err := s.AccountRepository.Insert(ctx, nil, models.AccountFields{Username: models.Ptr("dave")})
	require.NoError(t, err)

	first, err := s.AccountLogRepository.Insert(ctx, nil, models.AccountLog{
		AccountID:     account.ID,
		OpUserID:      account.ID,
		OpType:        models.OpTypeRegister,
		OpTimestamp:   ts,
		OpData:        models.OpData{"username": "dave"},
		IP:            "127.0.0.1",
		TransactionID: "trace-1",
	})
	require.NoError(t, err)
	second, err := s.AccountLogRepository.Insert(ctx, nil, models.AccountLog{
		AccountID:   account.ID,
		OpUserID:    account.ID,
		OpType:      models.OpTypeLogin,
		OpTimestamp: ts.Add(time.Minute),
	})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	entries, err := s.AccountLogRepository.FindByAccountID(ctx, nil, account.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, models.OpTypeRegister, entries[0].OpType)
	assert.Equal(t, "dave", entries[0].OpData["username"])
	assert.Equal(t, "127.0.0.1", entries[0].IP)
	assert.True(t, ts.Equal(entries[0].OpTimestamp))
	assert.Equal(t, models.OpData{}, entries[1].OpData)
}

func TestNewConnect_UnsupportedDriver(t *testing.T) {
	_, err := NewConnect(context.Background(), config.DB{Driver: "mysql"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
