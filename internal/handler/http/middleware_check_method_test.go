// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/account/me", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("me"))
	})
	router.Post("/api/account/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Put("/api/account/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "registered GET passes through", method: http.MethodGet, path: "/api/account/me", wantStatus: http.StatusOK, wantBody: "me"},
		{name: "registered POST passes through", method: http.MethodPost, path: "/api/account/login", wantStatus: http.StatusCreated},
		{name: "second method on same path", method: http.MethodPut, path: "/api/account/login", wantStatus: http.StatusAccepted},
		{name: "wrong method is 404", method: http.MethodDelete, path: "/api/account/me", wantStatus: http.StatusNotFound},
		{name: "wrong method on multi-method path", method: http.MethodGet, path: "/api/account/login", wantStatus: http.StatusNotFound},
		{name: "options is 404", method: http.MethodOptions, path: "/api/account/me", wantStatus: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, path: "/api/account/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
