// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/service"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/MKhiriev/go-account-keeper/internal/validators"
	"github.com/MKhiriev/go-account-keeper/models"
)

// codeInternal is written for failures that carry no code of their own.
const codeInternal = 50000

var errorStatusMap = map[error]int{
	service.ErrAccountNotExist:         http.StatusNotFound,
	service.ErrAccountValidateFail:     http.StatusBadRequest,
	service.ErrAccountPasswordMismatch: http.StatusUnauthorized,
	service.ErrAccountNotEnabled:       http.StatusForbidden,
	service.ErrAccountTokenMismatch:    http.StatusUnauthorized,

	service.ErrAccountUsernameExist: http.StatusConflict,
	service.ErrAccountPhoneExist:    http.StatusConflict,
	service.ErrAccountEmailExist:    http.StatusConflict,
	service.ErrAccountIDCardExist:   http.StatusConflict,
	service.ErrAccountNickExist:     http.StatusConflict,

	service.ErrUserNotLogin:     http.StatusUnauthorized,
	service.ErrRealNameAuthFail: http.StatusForbidden,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrAccountNotFound:       http.StatusNotFound,

	validators.ErrValidation: http.StatusBadRequest,

	service.ErrStorageUnavailable: http.StatusServiceUnavailable,

	ErrInvalidJSON:                      http.StatusBadRequest,
	ErrEmptyAuthorizationHeader:         http.StatusUnauthorized,
	utils.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
}

// statusFromError resolves the HTTP status of err. The first account error
// in the chain decides; other sentinels are only consulted without one.
func statusFromError(err error) int {
	var accountErr *service.AccountError
	if errors.As(err, &accountErr) {
		if status, ok := errorStatusMap[accountErr]; ok {
			return status
		}
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

type coded interface {
	Code() int
}

// codeFromError returns the first numeric code found in err's chain.
func codeFromError(err error) int {
	var c coded
	if errors.As(err, &c) {
		return c.Code()
	}
	switch statusFromError(err) {
	case http.StatusBadRequest:
		return service.CodeAccountValidateFail
	case http.StatusUnauthorized:
		return service.CodeUserNotLogin
	}
	return codeInternal
}

// writeError logs err and writes it as a JSON {code, msg} body. Server side
// failures are reported with the status text only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	resp := models.ErrorResponse{Code: codeFromError(err), Msg: err.Error()}
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		resp.Msg = http.StatusText(status)
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, resp, status)
}
