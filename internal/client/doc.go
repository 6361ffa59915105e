// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line account client.
//
// Each invocation runs one subcommand against the account server through an
// [adapter.ServerAdapter]. Login and register print the bearer token; later
// invocations pass it back with -k or ACCOUNT_TOKEN.
package client
