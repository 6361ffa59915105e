// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/account/register", h.register)
		r.Post("/api/account/login", h.login)
		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/health", h.health)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/account/logout", h.logout)
		r.Put("/api/account/password", h.changePassword)
		r.Get("/api/account/me", h.me)
		r.Get("/api/account/logs", h.logs)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
