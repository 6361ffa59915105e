// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client runs one subcommand with its operands.
type Client interface {
	Run(ctx context.Context, args []string) error
}
