// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-account-keeper/models"
	"github.com/go-resty/resty/v2"
)

var statusSentinels = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
}

// mapHTTPError returns nil for 2xx responses and a *ServerError otherwise.
// A JSON {code, msg} body fills Code and Msg; any other body becomes Msg.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	serverErr := &ServerError{
		Status:   resp.StatusCode(),
		sentinel: statusSentinels[resp.StatusCode()],
	}

	body := strings.TrimSpace(string(resp.Body()))
	var coded models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &coded); err == nil && coded.Msg != "" {
		serverErr.ErrCode = coded.Code
		serverErr.Msg = coded.Msg
	} else {
		serverErr.Msg = body
	}
	if serverErr.Msg == "" {
		serverErr.Msg = http.StatusText(resp.StatusCode())
	}

	return serverErr
}
