// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the account HTTP server until SIGTERM, SIGINT or
// SIGQUIT arrives, then shuts it down gracefully.
package server
