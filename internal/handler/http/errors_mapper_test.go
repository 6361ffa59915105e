// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	persistence := &store.PersistenceError{Op: "accountRepository.Insert", Err: errors.Join(store.ErrExecutingQuery, errors.New("disk I/O error"))}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{
			name:       "account not exist",
			err:        service.ErrAccountNotExist,
			wantStatus: http.StatusNotFound,
			wantCode:   service.CodeAccountNotExist,
			wantMsg:    "account does not exist",
		},
		{
			name:       "username exists wrapping store sentinel",
			err:        fmt.Errorf("%w: %w", service.ErrAccountUsernameExist, store.ErrUsernameAlreadyExists),
			wantStatus: http.StatusConflict,
			wantCode:   service.CodeAccountUsernameExist,
		},
		{
			name:       "validation failure",
			err:        fmt.Errorf("%w: %w", service.ErrAccountValidateFail, errors.New("bad username")),
			wantStatus: http.StatusBadRequest,
			wantCode:   service.CodeAccountValidateFail,
		},
		{
			name:       "first account error decides",
			err:        fmt.Errorf("%w: %w", service.ErrUserNotLogin, service.ErrAccountNotExist),
			wantStatus: http.StatusUnauthorized,
			wantCode:   service.CodeUserNotLogin,
		},
		{
			name:       "invalid json",
			err:        fmt.Errorf("%w: %w", ErrInvalidJSON, errors.New("unexpected EOF")),
			wantStatus: http.StatusBadRequest,
			wantCode:   service.CodeAccountValidateFail,
		},
		{
			name:       "uncoded auth header failure",
			err:        utils.ErrInvalidAuthorizationHeader,
			wantStatus: http.StatusUnauthorized,
			wantCode:   service.CodeUserNotLogin,
		},
		{
			name:       "persistence failure hides details",
			err:        persistence,
			wantStatus: http.StatusInternalServerError,
			wantCode:   store.CodePersistenceError,
			wantMsg:    http.StatusText(http.StatusInternalServerError),
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   codeInternal,
			wantMsg:    http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Msg)
			} else {
				assert.Equal(t, tt.err.Error(), resp.Msg)
			}
		})
	}
}
