// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"
)

// WriteJSON marshals data and writes it with statusCode. When data cannot be
// marshaled nothing of it is sent: the client gets a bare 500 and the
// marshal error is returned.
//
//	utils.WriteJSON(w, account, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return 0, fmt.Errorf("error encoding response body: %w", err)
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// WriteText writes text as a 200 text/plain body.
func WriteText(w http.ResponseWriter, text string) (int, error) {
	w.Header().Set("Content-Type", contentTypeText)

	return w.Write([]byte(text))
}
