// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticSource(cfg *StructuredConfig) func() (*StructuredConfig, error) {
	return func() (*StructuredConfig, error) { return cfg, nil }
}

func TestConfigBuilder_EmptyBuild(t *testing.T) {
	cfg, err := newConfigBuilder().build()

	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestConfigBuilder_FirstSourceWins(t *testing.T) {
	cfg, err := newConfigBuilder().
		load("env", staticSource(&StructuredConfig{Server: Server{HTTPAddress: "env:1"}})).
		load("flags", staticSource(&StructuredConfig{
			Server: Server{HTTPAddress: "flag:2", RequestTimeout: time.Second},
			Cache:  Cache{WarmUp: true},
		})).
		build()

	require.NoError(t, err)
	assert.Equal(t, "env:1", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Cache.WarmUp)
}

func TestConfigBuilder_LoadErrorsAreJoined(t *testing.T) {
	errEnv := errors.New("env broken")
	errFlags := errors.New("flags broken")

	b := newConfigBuilder().
		load("env", func() (*StructuredConfig, error) { return nil, errEnv }).
		load("flags", func() (*StructuredConfig, error) { return nil, errFlags })

	assert.Empty(t, b.sources)

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, errEnv)
	assert.ErrorIs(t, err, errFlags)
	assert.Contains(t, err.Error(), "env: env broken")
	assert.Contains(t, err.Error(), "flags: flags broken")
}

func TestConfigBuilder_ValidatesMergedResult(t *testing.T) {
	_, err := newConfigBuilder().
		load("env", staticSource(&StructuredConfig{Storage: Storage{DB: DB{Driver: "mysql"}}})).
		build()

	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestConfigBuilder_WithEnv(t *testing.T) {
	b := newConfigBuilder()
	b.environ = map[string]string{"APP_VERSION": "env-version", "APP_TOKEN_ISSUER": "env-issuer"}

	cfg, err := b.withEnv().build()

	require.NoError(t, err)
	assert.Equal(t, "env-version", cfg.App.Version)
	assert.Equal(t, "env-issuer", cfg.App.TokenIssuer)
}

func TestConfigBuilder_WithFlags(t *testing.T) {
	cfg, err := newConfigBuilder().withFlags([]string{"-d", "file:x.db"}).build()

	require.NoError(t, err)
	assert.Equal(t, "file:x.db", cfg.Storage.DB.DSN)

	_, err = newConfigBuilder().withFlags([]string{"-nope"}).build()
	assert.Error(t, err)
}

func TestConfigBuilder_WithJSON(t *testing.T) {
	path := writeConfigFile(t, `{"app": {"version": "json-version"}, "storage": {"db": {"dsn": "file:json.db"}}}`)

	t.Run("skipped without a path", func(t *testing.T) {
		b := newConfigBuilder().load("env", staticSource(&StructuredConfig{})).withJSON()
		assert.Len(t, b.sources, 1)
	})

	t.Run("lowest priority", func(t *testing.T) {
		cfg, err := newConfigBuilder().
			load("env", staticSource(&StructuredConfig{JSONFilePath: path, App: App{Version: "env-version"}})).
			withJSON().
			build()

		require.NoError(t, err)
		assert.Equal(t, "env-version", cfg.App.Version)
		assert.Equal(t, "file:json.db", cfg.Storage.DB.DSN)
	})

	t.Run("first path wins", func(t *testing.T) {
		b := newConfigBuilder().
			load("env", staticSource(&StructuredConfig{JSONFilePath: path})).
			load("flags", staticSource(&StructuredConfig{JSONFilePath: "/missing.json"}))

		assert.Equal(t, path, b.jsonPath())
		_, err := b.withJSON().build()
		assert.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := newConfigBuilder().
			load("flags", staticSource(&StructuredConfig{JSONFilePath: "/missing.json"})).
			withJSON().
			build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "json:")
	})
}

func TestApplyDefaults_FillsOnlyEmptyFields(t *testing.T) {
	cfg := &StructuredConfig{Server: Server{HTTPAddress: "127.0.0.1:9000"}}
	cfg.applyDefaults()

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultDriver, cfg.Storage.DB.Driver)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{name: "zero", cfg: StructuredConfig{}},
		{name: "sqlite", cfg: StructuredConfig{Storage: Storage{DB: DB{Driver: "sqlite3"}}}},
		{name: "unknown driver", cfg: StructuredConfig{Storage: Storage{DB: DB{Driver: "mysql"}}}, wantErr: ErrInvalidStorageConfigs},
		{name: "negative pool", cfg: StructuredConfig{Storage: Storage{DB: DB{MaxOpenConns: -1}}}, wantErr: ErrInvalidStorageConfigs},
		{name: "negative token duration", cfg: StructuredConfig{App: App{TokenDuration: -time.Second}}, wantErr: ErrInvalidAppConfigs},
		{name: "negative timeout", cfg: StructuredConfig{Server: Server{RequestTimeout: -time.Second}}, wantErr: ErrInvalidAppConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateServer(t *testing.T) {
	cfg := &StructuredConfig{}
	assert.ErrorIs(t, cfg.validateServer(), ErrInvalidStorageConfigs)

	cfg.Storage.DB.DSN = "postgres://localhost/accounts"
	assert.ErrorIs(t, cfg.validateServer(), ErrInvalidAppConfigs)

	cfg.App.TokenSignKey = "secret"
	assert.NoError(t, cfg.validateServer())
}

func TestGetStructuredConfig(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-secret")
	t.Setenv("STORAGE_DB_DATABASE_URI", "file:env.db")

	cfg, err := GetStructuredConfig([]string{"-d", "file:flag.db", "-driver", "sqlite3", "-a", "localhost:9999"})
	require.NoError(t, err)

	assert.Equal(t, "file:env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "env-secret", cfg.App.TokenSignKey)
	assert.Equal(t, "localhost:9999", cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
}

func TestGetStructuredConfig_MissingRequired(t *testing.T) {
	clearEnvVars(t)

	_, err := GetStructuredConfig([]string{"-d", "file:x.db"})
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestGetStructuredConfig_JSONFromFlag(t *testing.T) {
	clearEnvVars(t)
	path := writeConfigFile(t, fmt.Sprintf(`{"app": {"token_sign_key": "json-secret"}, "storage": {"db": {"dsn": %q}}}`, "file:json.db"))

	cfg, err := GetStructuredConfig([]string{"-c", path, "-d", "file:flag.db"})
	require.NoError(t, err)

	assert.Equal(t, "file:flag.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "json-secret", cfg.App.TokenSignKey)
}
