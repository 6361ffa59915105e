// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"time"
)

const (
	DefaultClientAddress = "http://localhost:8080"
	DefaultClientTimeout = 10 * time.Second
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the account server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the configuration of the command-line client.
type ClientConfig struct {
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// Token is the bearer token printed by a previous login.
	// Env: ACCOUNT_TOKEN
	Token string `env:"ACCOUNT_TOKEN"`
}

// GetClientConfig reads the client configuration from the environment and
// from the leading flags of args (-s server URL, -t timeout, -k token). It returns the
// arguments left after the flags, i.e. the subcommand and its operands.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg, nil); err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	address := fs.String("s", "", "Account server base URL")
	timeout := fs.Duration("t", 0, "Request timeout (e.g., 5s)")
	token := fs.String("k", "", "Bearer token of a previous login")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing client flags: %w", err)
	}

	if *address != "" {
		cfg.Adapter.HTTPAddress = *address
	}
	if *timeout != 0 {
		cfg.Adapter.RequestTimeout = *timeout
	}
	if *token != "" {
		cfg.Token = *token
	}
	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = DefaultClientAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultClientTimeout
	}

	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}

	return cfg, fs.Args(), nil
}
