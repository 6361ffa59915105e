// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-account-keeper/internal/logger"

// Storages groups the repositories that share one database.
type Storages struct {
	Transactor           Transactor
	Pinger               Pinger
	AccountRepository    AccountRepository
	AccountLogRepository AccountLogRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		Transactor:           db,
		Pinger:               db,
		AccountRepository:    NewAccountRepository(db, log),
		AccountLogRepository: NewAccountLogRepository(db, log),
	}
}
