// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides the rule engine used to check account and
// audit inputs before they reach the store.
//
// Core concepts:
//   - Spec: the rule set of one field (declared type, null/undefined
//     acceptance, ordered rules).
//   - CheckValue: evaluates a value against a Spec and reports the first
//     failure as a *ValidationError.
//   - Validator: validates whole models, optionally scoped to named fields.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
