// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
)

type accountCtxKey struct{}

// auth is an HTTP middleware that enforces bearer authentication.
//
// The envelope in the "Authorization" header must be a JWT signed with the
// configured key and issuer. Its "sub" claim names the account and its "jti"
// claim must equal the account's current session token, checked via
// [service.RegistrationService.Authenticate]. Envelopes issued before the
// last login or logout are therefore rejected.
//
// On success the account and its id are stored in the request context.
// Every rejection is written as 401 with the ErrUserNotLogin code, except a
// session token mismatch, malformed jti included, which keeps its own code.
// Store failures stay 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrUserNotLogin, ErrEmptyAuthorizationHeader))
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrUserNotLogin, err))
			return
		}

		token, err := utils.ValidateAndParseJWTToken(tokenString, h.tokens.TokenSignKey, h.tokens.TokenIssuer)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrUserNotLogin, err))
			return
		}

		ctx := r.Context()
		account, err := h.services.RegistrationService.Authenticate(ctx, token.AccountID, token.SessionToken)
		if errors.Is(err, service.ErrAccountNotExist) {
			err = fmt.Errorf("%w: %w", service.ErrUserNotLogin, err)
		}
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx = utils.WithAccountID(ctx, account.ID)
		ctx = context.WithValue(ctx, accountCtxKey{}, account)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accountFromRequest returns the account stored by auth.
func accountFromRequest(r *http.Request) (*models.Account, error) {
	account, ok := r.Context().Value(accountCtxKey{}).(*models.Account)
	if !ok || account == nil {
		return nil, ErrNoAccountInContext
	}
	return account, nil
}
