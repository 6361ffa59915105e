// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/store"
	"github.com/MKhiriev/go-account-keeper/internal/utils"
)

// Option tunes a single account operation.
type Option func(*options)

type options struct {
	tx          store.Tx
	useCache    bool
	autoSave    bool
	checkExists bool
	quiet       bool

	useCacheSet bool
	autoSaveSet bool
}

// WithTx runs the operation inside tx. The caller owns commit and rollback.
func WithTx(tx store.Tx) Option {
	return func(o *options) {
		o.tx = tx
	}
}

// WithCache controls whether the operation reads and writes the account
// cache. Default: true.
func WithCache(useCache bool) Option {
	return func(o *options) {
		o.useCache = useCache
		o.useCacheSet = true
	}
}

// WithAutoSave controls whether Update persists the change. Default: true.
func WithAutoSave(autoSave bool) Option {
	return func(o *options) {
		o.autoSave = autoSave
		o.autoSaveSet = true
	}
}

// WithCheckExists controls whether a lookup miss is an error. Default: true.
func WithCheckExists(checkExists bool) Option {
	return func(o *options) {
		o.checkExists = checkExists
	}
}

// Quietly turns failures into logged errors: the operation returns its zero
// value and a nil error.
func Quietly() Option {
	return func(o *options) {
		o.quiet = true
	}
}

// newOptions applies opts over the defaults. Unset cache and auto-save flags
// fall back to the context defaults, then to true.
func newOptions(ctx context.Context, opts []Option) options {
	o := options{checkExists: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if !o.useCacheSet {
		o.useCache = true
		if v, ok := utils.UseCacheFromContext(ctx); ok {
			o.useCache = v
		}
	}
	if !o.autoSaveSet {
		o.autoSave = true
		if v, ok := utils.AutoSaveFromContext(ctx); ok {
			o.autoSave = v
		}
	}

	return o
}

// querier returns the transaction, or a nil Querier so that the store uses
// the pool.
func (o options) querier() store.Querier {
	if o.tx == nil {
		return nil
	}
	return o.tx
}

// afterCommit runs fn once the transaction commits, or right away when the
// operation is not transactional.
func (o options) afterCommit(fn func()) {
	if o.tx == nil {
		fn()
		return
	}
	o.tx.AfterCommit(fn)
}

// fail returns err, or logs it and returns nil for quiet operations.
func (o options) fail(log *logger.Logger, err error) error {
	if err == nil {
		return nil
	}
	if o.quiet {
		log.Err(err).Msg("operation failed, error suppressed")
		return nil
	}
	return err
}
