// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
)

// register signs up a new account and logs it in right away, so the
// response already carries a bearer envelope.
//
// The account is committed before the login runs. If the login fails the
// response is still 201 with the created account but without an
// Authorization header; the client obtains a session through login.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var creds models.CredentialsRequest
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.services.RegistrationService.SignUp(ctx, creds.Username, creds.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.RegistrationService.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Uint64("account_id", created.ID).Msg("login after sign up failed")
		utils.WriteJSON(w, created, http.StatusCreated)
		return
	}

	h.writeSession(w, r, account, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var creds models.CredentialsRequest
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.services.RegistrationService.Login(ctx, creds.Username, creds.Password)
	if errors.Is(err, service.ErrAccountNotExist) {
		// unknown usernames look the same as wrong passwords
		err = service.ErrAccountPasswordMismatch
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeSession(w, r, account, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.RegistrationService.Logout(r.Context(), account); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.ChangePasswordRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.RegistrationService.ChangePassword(r.Context(), account, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) logs(w http.ResponseWriter, r *http.Request) {
	account, err := accountFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.services.AuditLog.ListByAccount(r.Context(), account.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.AccountLog{}
	}

	utils.WriteJSON(w, models.AccountLogsResponse{Logs: entries}, http.StatusOK)
}

// writeSession signs an envelope for the account's current session token,
// sets it as the Authorization header and writes the account as the body.
func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, account *models.Account, status int) {
	token, err := utils.GenerateJWTToken(h.tokens.TokenIssuer, account.ID, account.TokenA, h.tokens.TokenDuration, h.tokens.TokenSignKey)
	if err != nil {
		logger.FromRequest(r).Err(err).Uint64("account_id", account.ID).Msg("creation of token failed")
		writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, account, status)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
