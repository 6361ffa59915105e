// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_WriteHeader_OnlyFirstCounts(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusConflict)
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusConflict, w.status)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestResponseWriter_Write(t *testing.T) {
	tests := []struct {
		name       string
		header     int
		writes     []string
		wantStatus int
		wantSize   int
	}{
		{name: "implicit 200", writes: []string{"hello"}, wantStatus: http.StatusOK, wantSize: 5},
		{name: "explicit status kept", header: http.StatusCreated, writes: []string{"{}"}, wantStatus: http.StatusCreated, wantSize: 2},
		{name: "size accumulates", writes: []string{"ab", "cde", ""}, wantStatus: http.StatusOK, wantSize: 5},
		{name: "no body", header: http.StatusNoContent, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			w := &responseWriter{ResponseWriter: rec}

			if tt.header != 0 {
				w.WriteHeader(tt.header)
			}
			for _, s := range tt.writes {
				_, err := w.Write([]byte(s))
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantStatus, w.status)
			assert.Equal(t, tt.wantSize, w.size)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
