// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

var supportedDrivers = map[string]struct{}{
	"":        {},
	"pgx":     {},
	"sqlite3": {},
}

// validate checks the merged [StructuredConfig] for values that are wrong
// regardless of defaults.
func (cfg *StructuredConfig) validate() error {
	if _, ok := supportedDrivers[cfg.Storage.DB.Driver]; !ok {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.MaxOpenConns < 0 {
		return fmt.Errorf("%w: negative max open conns", ErrInvalidStorageConfigs)
	}
	if cfg.App.TokenDuration < 0 || cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidAppConfigs)
	}

	return nil
}

// validateServer checks the fields the server cannot start without.
// It runs after defaults are applied.
func (cfg *StructuredConfig) validateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
