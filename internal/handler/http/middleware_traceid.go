// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-account-keeper/internal/utils"
	"github.com/google/uuid"
)

const (
	traceIDHeader      = "X-Trace-ID"
	forwardedForHeader = "X-Forwarded-For"
)

var traceIDs = utils.NewUUIDGenerator()

// withTraceID tags the request with a trace id and a child logger carrying
// it. The trace id and the client address are also stored as request
// metadata, so audit entries written while serving the request record them.
//
// An incoming X-Trace-ID is reused only when it parses as a UUID; anything
// else is replaced by a fresh one.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var traceID string
		if parsed, err := uuid.Parse(r.Header.Get(traceIDHeader)); err == nil {
			traceID = parsed.String()
		} else {
			traceID = traceIDs.Generate()
		}

		l := h.logger.WithTraceID(traceID)
		ctx = utils.WithRequestMeta(ctx, utils.RequestMeta{
			IP:            clientIP(r),
			TransactionID: traceID,
		})
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the first X-Forwarded-For hop when it is an IP address
// and falls back to the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get(forwardedForHeader); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
