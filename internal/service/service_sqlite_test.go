// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/MKhiriev/go-account-keeper/internal/cache"
	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/crypto"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sqliteSeq atomic.Int64

type sqliteEnv struct {
	db       *store.DB
	storages *store.Storages
	cache    *cache.AccountCache
	services *Services
}

func newSQLiteEnv(t *testing.T) sqliteEnv {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", sqliteSeq.Add(1))
	db, err := store.NewConnectSQLite(ctx, config.DB{Driver: "sqlite3", DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	storages := store.NewStorages(db, logger.Nop())
	accountCache := cache.NewAccountCache()
	services, err := NewServices(storages, accountCache, config.StructuredConfig{App: config.App{Version: "test"}}, logger.Nop())
	require.NoError(t, err)

	return sqliteEnv{db: db, storages: storages, cache: accountCache, services: services}
}

func (e sqliteEnv) countEntries(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow("SELECT COUNT(*) FROM t_account_log").Scan(&n))
	return n
}

func TestSQLite_RegisterBob(t *testing.T) {
	env := newSQLiteEnv(t)
	ctx := context.Background()

	account, err := env.services.RegistrationService.Register(ctx, "bob")

	require.NoError(t, err)
	assert.Equal(t, models.Account{ID: 1, Username: models.Ptr("bob")}, *account)

	entries, err := env.services.AuditLog.ListByAccount(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(1), entries[0].AccountID)
	assert.Equal(t, uint64(1), entries[0].OpUserID)
	assert.Equal(t, models.OpTypeRegister, entries[0].OpType)
	assert.Equal(t, models.OpData{"username": "bob"}, entries[0].OpData)

	cached, err := env.services.IdentityManager.GetByUsernameFromCache(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cached.ID)
}

func TestSQLite_DuplicateRegistrationLeavesOneEntry(t *testing.T) {
	env := newSQLiteEnv(t)
	ctx := context.Background()

	_, err := env.services.RegistrationService.Register(ctx, "alice")
	require.NoError(t, err)

	// cache fast-reject
	_, err = env.services.RegistrationService.Register(ctx, "alice")
	assert.ErrorIs(t, err, ErrAccountUsernameExist)

	// unique index, with the cache out of the way
	_, err = env.services.RegistrationService.Register(ctx, "alice", WithCache(false))
	assert.ErrorIs(t, err, ErrAccountUsernameExist)
	assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)

	assert.Equal(t, 1, env.countEntries(t))
}

func TestSQLite_ConcurrentDuplicateRegistration(t *testing.T) {
	env := newSQLiteEnv(t)
	ctx := context.Background()
	const workers = 8

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		errs      = make(chan error, workers)
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.services.RegistrationService.Register(ctx, "alice"); err != nil {
				errs <- err
				return
			}
			succeeded.Add(1)
		}()
	}
	wg.Wait()
	close(errs)

	assert.Equal(t, int32(1), succeeded.Load())
	for err := range errs {
		assert.ErrorIs(t, err, ErrAccountUsernameExist)
	}
	assert.Equal(t, 1, env.countEntries(t))
}

func TestSQLite_RolledBackRegistrationIsInvisible(t *testing.T) {
	env := newSQLiteEnv(t)
	ctx := context.Background()

	tx, err := env.storages.Transactor.BeginTx(ctx)
	require.NoError(t, err)
	_, err = env.services.RegistrationService.Register(ctx, "eve", WithTx(tx))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	_, err = env.services.IdentityManager.GetByUsernameFromCache(ctx, "eve")
	assert.ErrorIs(t, err, ErrAccountNotExist)
	_, err = env.services.IdentityManager.GetByUsername(ctx, "eve")
	assert.ErrorIs(t, err, ErrAccountNotExist)
	assert.Equal(t, 0, env.countEntries(t))
}

func TestSQLite_UpdateWithoutAutoSave(t *testing.T) {
	env := newSQLiteEnv(t)
	ctx := context.Background()
	im := env.services.IdentityManager

	account, err := env.services.RegistrationService.Register(ctx, "bob")
	require.NoError(t, err)

	newHash, err := crypto.NewCredentialCodec().HashCredential("new-secret")
	require.NoError(t, err)

	ok, err := im.Update(ctx, account, models.AccountFields{Password: &newHash}, WithAutoSave(false))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, newHash, account.Password)

	stored, err := env.storages.AccountRepository.FindByID(ctx, nil, account.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Password, "store is untouched until an explicit save")

	ok, err = im.Save(ctx, account)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err = env.storages.AccountRepository.FindByID(ctx, nil, account.ID)
	require.NoError(t, err)
	assert.Equal(t, newHash, stored.Password)

	ok, err = im.Update(ctx, account, models.AccountFields{TokenA: models.Ptr(tokenA)})
	require.NoError(t, err)
	assert.True(t, ok)
	stored, err = env.storages.AccountRepository.FindByID(ctx, nil, account.ID)
	require.NoError(t, err)
	assert.Equal(t, tokenA, stored.TokenA)
}

func TestSQLite_SessionLifecycle(t *testing.T) {
	env := newSQLiteEnv(t)
	ctx := context.Background()
	rs := env.services.RegistrationService

	registered, err := rs.SignUp(ctx, "carol", "s3cret")
	require.NoError(t, err)
	assert.Len(t, registered.Password, 64)
	assert.Empty(t, registered.TokenA)

	_, err = rs.Login(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, ErrAccountPasswordMismatch)

	_, err = rs.Login(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrAccountNotExist)

	account, err := rs.Login(ctx, "carol", "s3cret")
	require.NoError(t, err)
	require.Len(t, account.TokenA, 32)
	firstToken := account.TokenA

	authenticated, err := rs.Authenticate(ctx, account.ID, firstToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, authenticated.ID)

	require.NoError(t, rs.Logout(ctx, authenticated))
	assert.NotEqual(t, firstToken, authenticated.TokenA)

	_, err = rs.Authenticate(ctx, account.ID, firstToken)
	assert.ErrorIs(t, err, ErrAccountTokenMismatch)

	stored, err := env.storages.AccountRepository.FindByID(ctx, nil, account.ID)
	require.NoError(t, err)
	assert.Equal(t, authenticated.TokenA, stored.TokenA)

	entries, err := env.services.AuditLog.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, models.OpTypeRegister, entries[0].OpType)
	assert.Equal(t, models.OpTypeLogin, entries[1].OpType)
	assert.Equal(t, models.OpTypeLogout, entries[2].OpType)
}

func TestSQLite_ChangePassword(t *testing.T) {
	env := newSQLiteEnv(t)
	ctx := context.Background()
	rs := env.services.RegistrationService

	account, err := rs.SignUp(ctx, "dave", "old-pass")
	require.NoError(t, err)

	err = rs.ChangePassword(ctx, account, "not-it", "new-pass")
	assert.ErrorIs(t, err, ErrAccountPasswordMismatch)

	require.NoError(t, rs.ChangePassword(ctx, account, "old-pass", "new-pass"))

	_, err = rs.Login(ctx, "dave", "old-pass")
	assert.ErrorIs(t, err, ErrAccountPasswordMismatch)
	_, err = rs.Login(ctx, "dave", "new-pass")
	require.NoError(t, err)

	entries, err := env.services.AuditLog.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, models.OpTypePassword, entries[1].OpType)
}

func TestSQLite_ChangePasswordWithoutPreviousPassword(t *testing.T) {
	env := newSQLiteEnv(t)
	ctx := context.Background()
	rs := env.services.RegistrationService

	account, err := rs.Register(ctx, "frank")
	require.NoError(t, err)

	require.NoError(t, rs.ChangePassword(ctx, account, "", "first-pass"))
	_, err = rs.Login(ctx, "frank", "first-pass")
	require.NoError(t, err)
}

func TestSQLite_WarmUpFillsFreshCache(t *testing.T) {
	env := newSQLiteEnv(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := env.services.RegistrationService.Register(ctx, name)
		require.NoError(t, err)
	}

	freshCache := cache.NewAccountCache()
	services, err := NewServices(env.storages, freshCache, config.StructuredConfig{App: config.App{Version: "test"}}, logger.Nop())
	require.NoError(t, err)

	_, err = services.IdentityManager.GetByUsernameFromCache(ctx, "bob")
	assert.ErrorIs(t, err, ErrAccountNotExist, "a cache miss is not authoritative")

	n, err := services.IdentityManager.WarmUp(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	account, err := services.IdentityManager.GetByUsernameFromCache(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), account.ID)
}
