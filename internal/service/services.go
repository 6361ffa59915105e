// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-account-keeper/internal/cache"
	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/crypto"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
)

type Services struct {
	IdentityManager     IdentityManager
	AuditLog            AuditLog
	RegistrationService RegistrationService
	AppInfoService      AppInfoService
}

// NewServices wires the core over storages. accountCache is created by the
// caller at process start and lives as long as the returned services.
func NewServices(storages *store.Storages, accountCache *cache.AccountCache, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	validator := validators.NewAccountValidator()

	appInfo, err := NewAppInfoService(cfg.App, storages.Pinger, logger)
	if err != nil {
		return nil, err
	}

	identity := NewIdentityManager(storages.AccountRepository, accountCache, crypto.NewCredentialCodec(), validator, logger)
	audit := NewAuditLog(storages.AccountLogRepository, validator, logger)

	return &Services{
		IdentityManager:     identity,
		AuditLog:            audit,
		RegistrationService: NewRegistrationService(storages.Transactor, identity, audit, logger),
		AppInfoService:      appInfo,
	}, nil
}
