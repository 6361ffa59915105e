// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
)

// CodeValidateFail is the numeric code carried by every ValidationError.
const CodeValidateFail = 10002

var (
	// ErrValidation matches any *ValidationError through errors.Is.
	ErrValidation = errors.New("validation failed")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// ValidationError reports the first rule a field failed.
type ValidationError struct {
	Field  string
	Reason string
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Reason)
}

// Code returns CodeValidateFail.
func (e *ValidationError) Code() int {
	return CodeValidateFail
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
