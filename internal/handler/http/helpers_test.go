// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/cache"
	"github.com/MKhiriev/go-account-keeper/internal/config"
	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/stretchr/testify/require"
)

var dbSeq atomic.Int64

var testTokens = config.App{
	TokenSignKey:  "handler-test-key",
	TokenIssuer:   "account-keeper-test",
	TokenDuration: time.Hour,
	Version:       "1.2.3",
}

type testServer struct {
	router   http.Handler
	services *service.Services
}

// newTestServer serves the full router over services backed by a private
// in-memory SQLite database.
func newTestServer(t *testing.T) testServer {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := store.NewConnectSQLite(ctx, config.DB{Driver: "sqlite3", DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	services, err := service.NewServices(store.NewStorages(db, logger.Nop()), cache.NewAccountCache(),
		config.StructuredConfig{App: testTokens}, logger.Nop())
	require.NoError(t, err)

	return testServer{
		router:   NewHandler(services, testTokens, logger.Nop()).Init(),
		services: services,
	}
}

// do sends body (JSON-encoded unless it is a string) with an optional
// Authorization header value.
func (s testServer) do(t *testing.T, method, path string, body any, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register signs up username and returns the Authorization header value of
// the response together with the created account.
func (s testServer) register(t *testing.T, username, password string) (string, models.Account) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/account/register", models.CredentialsRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var account models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))

	authorization := rec.Header().Get("Authorization")
	require.NotEmpty(t, authorization)
	return authorization, account
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}
