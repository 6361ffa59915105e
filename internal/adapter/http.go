// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises adapterCfg.HTTPAddress into the client's base URL and applies
// the request timeout.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, username, password string) (models.Account, error) {
	return h.session(ctx, "/api/account/register", username, password)
}

func (h *httpServerAdapter) Login(ctx context.Context, username, password string) (models.Account, error) {
	return h.session(ctx, "/api/account/login", username, password)
}

// session posts credentials to path and keeps the bearer token of the answer.
func (h *httpServerAdapter) session(ctx context.Context, path, username, password string) (models.Account, error) {
	var account models.Account

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.CredentialsRequest{Username: username, Password: password}).
		SetResult(&account).
		Post(path)
	if err != nil {
		return models.Account{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Account{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	h.logger.Debug().Str("path", path).Uint64("account_id", account.ID).Msg("session stored")
	return account, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	req, err := h.authorized(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post("/api/account/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	req, err := h.authorized(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}).
		Put("/api/account/password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.Account, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return models.Account{}, err
	}

	var account models.Account
	resp, err := req.SetResult(&account).Get("/api/account/me")
	if err != nil {
		return models.Account{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

func (h *httpServerAdapter) Logs(ctx context.Context) ([]models.AccountLog, error) {
	req, err := h.authorized(ctx)
	if err != nil {
		return nil, err
	}

	var logs models.AccountLogsResponse
	resp, err := req.SetResult(&logs).Get("/api/account/logs")
	if err != nil {
		return nil, fmt.Errorf("logs request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return logs.Logs, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

// authorized starts a request carrying the stored bearer token.
func (h *httpServerAdapter) authorized(ctx context.Context) (*resty.Request, error) {
	if h.token == "" {
		return nil, ErrNotLoggedIn
	}
	return h.client.R().SetContext(ctx).SetAuthToken(h.token), nil
}
