// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

// Stable account error codes.
const (
	CodeAccountNotExist         = 10001
	CodeAccountValidateFail     = 10002
	CodeAccountPasswordMismatch = 10003
	CodeAccountNotEnabled       = 10004
	CodeAccountTokenMismatch    = 10005

	CodeAccountUsernameExist = 20001
	CodeAccountPhoneExist    = 20002
	CodeAccountEmailExist    = 20003
	CodeAccountIDCardExist   = 20004
	CodeAccountNickExist     = 20005

	CodeUserNotLogin     = 30001
	CodeRealNameAuthFail = 30002
)

// AccountError is a domain failure with a stable numeric code. The values
// below are sentinels: match them with errors.Is.
type AccountError struct {
	code int
	msg  string
}

func newAccountError(code int, msg string) *AccountError {
	return &AccountError{code: code, msg: msg}
}

func (e *AccountError) Error() string {
	return e.msg
}

// Code returns the stable numeric code of e.
func (e *AccountError) Code() int {
	return e.code
}

var (
	ErrAccountNotExist         = newAccountError(CodeAccountNotExist, "account does not exist")
	ErrAccountValidateFail     = newAccountError(CodeAccountValidateFail, "account validation failed")
	ErrAccountPasswordMismatch = newAccountError(CodeAccountPasswordMismatch, "password mismatch")
	ErrAccountNotEnabled       = newAccountError(CodeAccountNotEnabled, "account is not enabled")
	ErrAccountTokenMismatch    = newAccountError(CodeAccountTokenMismatch, "token mismatch")

	ErrAccountUsernameExist = newAccountError(CodeAccountUsernameExist, "username already exists")
	ErrAccountPhoneExist    = newAccountError(CodeAccountPhoneExist, "phone already exists")
	ErrAccountEmailExist    = newAccountError(CodeAccountEmailExist, "email already exists")
	ErrAccountIDCardExist   = newAccountError(CodeAccountIDCardExist, "id card already exists")
	ErrAccountNickExist     = newAccountError(CodeAccountNickExist, "nick already exists")

	ErrUserNotLogin     = newAccountError(CodeUserNotLogin, "user is not logged in")
	ErrRealNameAuthFail = newAccountError(CodeRealNameAuthFail, "real name authentication failed")
)

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrStorageUnavailable    = errors.New("storage is unavailable")
)

// validationFailed tags a validator error with ErrAccountValidateFail.
func validationFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrAccountValidateFail, err)
}
