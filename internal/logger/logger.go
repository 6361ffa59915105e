// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog with the constructors and context helpers used
// by the account server and client.
//
// Every entry is JSON with "role", "time" and "func" (the calling function)
// fields. Request handling code takes its logger from the context with
// [FromContext], [FromContextOr] or [FromRequest]; the HTTP layer attaches one
// carrying the request's trace id.
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	clientLogDir  = "go-account-keeper"
	clientLogFile = "client.log"
)

var setupGlobals sync.Once

// Logger embeds zerolog.Logger, so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

// New returns a logger writing JSON entries for role to w.
func New(w io.Writer, role string) *Logger {
	setupGlobals.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})

	return &Logger{zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// NewLogger returns a server logger writing to stdout.
func NewLogger(role string) *Logger {
	return New(os.Stdout, role)
}

// NewClientLogger returns a logger for the command-line client. Entries go to
// client.log in the user cache directory so they stay out of command output;
// stderr is used when that file cannot be opened.
func NewClientLogger(role string) *Logger {
	file, err := openClientLog()
	if err != nil {
		return New(os.Stderr, role)
	}

	return New(file, role)
}

func openClientLog() (*os.File, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(base, clientLogDir)
	if err = os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}

	return os.OpenFile(filepath.Join(dir, clientLogFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
}

// SetLevel sets the process-wide minimum level. An empty level keeps debug.
func SetLevel(level string) error {
	if level == "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return nil
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", level, err)
	}

	zerolog.SetGlobalLevel(parsed)
	return nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithTraceID returns a child of l tagged with trace_id.
func (l *Logger) WithTraceID(traceID string) *Logger {
	return &Logger{l.With().Str("trace_id", traceID).Logger()}
}

// Component returns a child of l tagged with component. It is safe to call
// on a nil *Logger.
func (l *Logger) Component(identifier string) *Logger {
	if l == nil {
		return Nop()
	}
	return &Logger{l.With().Str("component", identifier).Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx, or zerolog's default
// logger when there is none. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// FromContextOr returns the logger attached to ctx, or fallback when ctx
// carries none. A nil fallback yields a Nop logger.
func FromContextOr(ctx context.Context, fallback *Logger) *Logger {
	if zl := log.Ctx(ctx); zl.GetLevel() != zerolog.Disabled {
		return &Logger{*zl}
	}
	if fallback == nil {
		return Nop()
	}
	return fallback
}
