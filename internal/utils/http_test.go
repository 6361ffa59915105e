// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{
			name:     "error response",
			data:     models.ErrorResponse{Code: 10003, Msg: "password mismatch"},
			status:   http.StatusUnauthorized,
			wantBody: `{"code":10003,"msg":"password mismatch"}`,
		},
		{
			name:     "empty log list",
			data:     models.AccountLogsResponse{Logs: []models.AccountLog{}},
			status:   http.StatusOK,
			wantBody: `{"logs":[]}`,
		},
		{
			name:     "nil",
			status:   http.StatusOK,
			wantBody: "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			n, err := WriteJSON(rec, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, contentTypeJSON, rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWriteJSON_Account(t *testing.T) {
	rec := httptest.NewRecorder()
	username := "alice"
	account := models.Account{ID: 7, Username: &username}

	_, err := WriteJSON(rec, account, http.StatusCreated)
	require.NoError(t, err)

	var got models.Account
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(7), got.ID)
	require.NotNil(t, got.Username)
	assert.Equal(t, "alice", *got.Username)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestWriteJSON_Unmarshalable(t *testing.T) {
	rec := httptest.NewRecorder()

	n, err := WriteJSON(rec, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEqual(t, contentTypeJSON, rec.Header().Get("Content-Type"))
}

func TestWriteText(t *testing.T) {
	rec := httptest.NewRecorder()

	n, err := WriteText(rec, "1.4.0")

	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeText, rec.Header().Get("Content-Type"))
	assert.Equal(t, "1.4.0", rec.Body.String())
}
