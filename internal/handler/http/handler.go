// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
)

// Handler serves the account REST API on top of the core services.
type Handler struct {
	services *service.Services

	// tokens holds the key, issuer and lifetime of issued bearer envelopes.
	tokens config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, tokens config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		tokens:   tokens,
		logger:   logger,
	}
}
