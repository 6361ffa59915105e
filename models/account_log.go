// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OpType classifies an audit log entry.
type OpType uint8

const (
	OpTypeCreate   OpType = 1
	OpTypeUpdate   OpType = 2
	OpTypeDelete   OpType = 3
	OpTypeRegister OpType = 101
	OpTypeLogin    OpType = 102
	OpTypeLogout   OpType = 103
	OpTypePassword OpType = 104
)

var opTypeNames = map[OpType]string{
	OpTypeCreate:   "CREATE",
	OpTypeUpdate:   "UPDATE",
	OpTypeDelete:   "DELETE",
	OpTypeRegister: "REGISTER",
	OpTypeLogin:    "LOGIN",
	OpTypeLogout:   "LOGOUT",
	OpTypePassword: "PASSWORD",
}

// OpTypes returns every known operation type in ascending order.
func OpTypes() []OpType {
	return []OpType{
		OpTypeCreate,
		OpTypeUpdate,
		OpTypeDelete,
		OpTypeRegister,
		OpTypeLogin,
		OpTypeLogout,
		OpTypePassword,
	}
}

func (t OpType) String() string {
	if name, ok := opTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// OpData is the free-form JSON object attached to an audit entry.
type OpData map[string]any

// AccountLog is one immutable audit entry describing an operation on an account.
type AccountLog struct {
	ID            uint64    `json:"id"`
	AccountID     uint64    `json:"accountId"`
	OpUserID      uint64    `json:"opUserId"`
	OpType        OpType    `json:"opType"`
	OpTimestamp   time.Time `json:"opTimestamp"`
	OpData        OpData    `json:"opData"`
	IP            string    `json:"ip"`
	TransactionID string    `json:"transactionId"`
}
