// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the account server.
//
// It exposes route wiring, request handlers, and middleware. Request tracing,
// access logging, and bearer authentication are handled in this package
// before requests are delegated to the registration and audit services.
// Every coded failure is written as a JSON {code, msg} body.
package http
