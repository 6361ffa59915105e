// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")

	ErrNotLoggedIn = errors.New("no bearer token, log in first")
)

// ServerError is a non-2xx answer of the account server.
type ServerError struct {
	Status int
	// ErrCode is the account error code of the body, zero when it had none.
	ErrCode int
	Msg     string

	sentinel error
}

func (e *ServerError) Error() string {
	if e.ErrCode != 0 {
		return fmt.Sprintf("server error %d (code %d): %s", e.Status, e.ErrCode, e.Msg)
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Msg)
}

// Code returns the account error code carried by the response body.
func (e *ServerError) Code() int {
	return e.ErrCode
}

func (e *ServerError) Unwrap() error {
	return e.sentinel
}
