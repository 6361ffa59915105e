// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValueType is the declared runtime type of a checked value.
type ValueType int

const (
	// TypeAny accepts a value of any type.
	TypeAny ValueType = iota
	TypeString
	TypeNumber
	TypeBoolean
	TypeObject
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	default:
		return "any"
	}
}

type undefinedValue struct{}

// Undefined marks a value that was not supplied at all, as opposed to a value
// explicitly set to null (nil or a nil pointer).
var Undefined any = undefinedValue{}

// Optional maps a nil pointer to Undefined and dereferences anything else.
// Use it for partial-update inputs where nil means "not provided".
func Optional[T any](p *T) any {
	if p == nil {
		return Undefined
	}
	return *p
}

// RuleKind identifies what a Rule checks.
type RuleKind int

const (
	KindNonEmpty RuleKind = iota + 1
	KindRange
	KindEnum
	KindRegex
	KindCustom
)

// Rule is a single tagged check. Only the fields relevant to Kind are set;
// build rules with NonEmpty, Between, AtLeast, AtMost, OneOf, Matches and Custom.
type Rule struct {
	Kind    RuleKind
	Name    string
	Gte     *float64
	Lte     *float64
	List    []any
	Pattern *regexp.Regexp
	Check   func(value any) bool
}

// NonEmpty rejects empty strings, empty collections and zero-length objects.
func NonEmpty() Rule {
	return Rule{Kind: KindNonEmpty, Name: "non_empty"}
}

// Between bounds a number, or the character length of a string, to [gte, lte].
func Between(gte, lte float64) Rule {
	return Rule{Kind: KindRange, Name: "range", Gte: &gte, Lte: &lte}
}

// AtLeast is a range rule with a lower bound only.
func AtLeast(gte float64) Rule {
	return Rule{Kind: KindRange, Name: "range", Gte: &gte}
}

// AtMost is a range rule with an upper bound only.
func AtMost(lte float64) Rule {
	return Rule{Kind: KindRange, Name: "range", Lte: &lte}
}

// OneOf requires membership in values. Numbers are compared by value,
// regardless of their concrete Go type.
func OneOf(values ...any) Rule {
	return Rule{Kind: KindEnum, Name: "enum", List: values}
}

// Matches requires a string to match pattern. It panics on an invalid pattern,
// so call it only with compile-time constants.
func Matches(pattern string) Rule {
	return Rule{Kind: KindRegex, Name: "regex", Pattern: regexp.MustCompile(pattern)}
}

// Custom wraps an arbitrary predicate. A false result fails the rule.
func Custom(name string, check func(value any) bool) Rule {
	return Rule{Kind: KindCustom, Name: name, Check: check}
}

// Spec is the full rule set for one field.
type Spec struct {
	Type           ValueType
	Rules          []Rule
	AllowNull      bool
	AllowUndefined bool
}

// Optional returns a copy of s that accepts Undefined.
func (s Spec) Optional() Spec {
	s.AllowUndefined = true
	return s
}

// Nullable returns a copy of s that accepts null.
func (s Spec) Nullable() Spec {
	s.AllowNull = true
	return s
}

// With returns a copy of s with rules appended.
func (s Spec) With(rules ...Rule) Spec {
	merged := make([]Rule, 0, len(s.Rules)+len(rules))
	merged = append(merged, s.Rules...)
	s.Rules = append(merged, rules...)
	return s
}

// CheckValue validates value against spec and returns a *ValidationError
// naming field on the first failing check.
//
// Evaluation order: undefined, null, type, then each rule in declaration order.
func CheckValue(field string, value any, spec Spec) error {
	if _, ok := value.(undefinedValue); ok {
		if spec.AllowUndefined {
			return nil
		}
		return newValidationError(field, "value is required")
	}

	if isNull(value) {
		if spec.AllowNull {
			return nil
		}
		return newValidationError(field, "value must not be null")
	}

	value = deref(value)
	if !hasType(value, spec.Type) {
		return newValidationError(field, fmt.Sprintf("expected %s, got %T", spec.Type, value))
	}

	for _, rule := range spec.Rules {
		if reason, ok := rule.apply(value); !ok {
			return newValidationError(field, reason)
		}
	}

	return nil
}

func (r Rule) apply(value any) (string, bool) {
	switch r.Kind {
	case KindNonEmpty:
		if isEmpty(value) {
			return "must not be empty", false
		}
	case KindRange:
		n, ok := measure(value)
		if !ok {
			return fmt.Sprintf("range check is not applicable to %T", value), false
		}
		if r.Gte != nil && n < *r.Gte {
			return "must be at least " + formatBound(*r.Gte), false
		}
		if r.Lte != nil && n > *r.Lte {
			return "must be at most " + formatBound(*r.Lte), false
		}
	case KindEnum:
		for _, candidate := range r.List {
			if equalValues(value, candidate) {
				return "", true
			}
		}
		return "must be one of " + formatList(r.List), false
	case KindRegex:
		s, ok := value.(string)
		if !ok || r.Pattern == nil || !r.Pattern.MatchString(s) {
			return "must match " + patternString(r.Pattern), false
		}
	case KindCustom:
		if r.Check != nil && !r.Check(value) {
			return "failed " + r.Name + " check", false
		}
	default:
		return fmt.Sprintf("unknown rule kind %d", r.Kind), false
	}

	return "", true
}

func isNull(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func deref(value any) any {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

func hasType(value any, t ValueType) bool {
	kind := reflect.ValueOf(value).Kind()
	switch t {
	case TypeAny:
		return true
	case TypeString:
		return kind == reflect.String
	case TypeNumber:
		_, ok := toFloat(value)
		return ok
	case TypeBoolean:
		return kind == reflect.Bool
	case TypeObject:
		return kind == reflect.Map || kind == reflect.Struct
	default:
		return false
	}
}

func isEmpty(value any) bool {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return v.Len() == 0
	default:
		return false
	}
}

// measure returns the numeric magnitude used by range rules: the value itself
// for numbers, the number of characters for strings.
func measure(value any) (float64, bool) {
	if s, ok := value.(string); ok {
		return float64(utf8.RuneCountInString(s)), true
	}
	return toFloat(value)
}

func toFloat(value any) (float64, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

func equalValues(a, b any) bool {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		return af == bf
	}
	if aNum != bNum {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatList(list []any) string {
	parts := make([]string, 0, len(list))
	for _, item := range list {
		if n, ok := toFloat(item); ok {
			parts = append(parts, formatBound(n))
			continue
		}
		parts = append(parts, fmt.Sprint(item))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func patternString(re *regexp.Regexp) string {
	if re == nil {
		return "<nil>"
	}
	return re.String()
}
