// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CredentialsRequest is the body of register and login calls.
// Password is the plaintext credential; it is hashed before it reaches the store.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of a password change.
// OldPassword may be empty when the account never had a password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword,omitempty"`
	NewPassword string `json:"newPassword"`
}

// ErrorResponse is the JSON body written for every coded failure.
type ErrorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// AccountLogsResponse lists the audit trail of one account.
type AccountLogsResponse struct {
	Logs []AccountLog `json:"logs"`
}
