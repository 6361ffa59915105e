// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
)

// NetAddress is a host:port pair usable as a flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts "host:port" where host is localhost, an IP literal (IPv6 in
// brackets) or empty for every interface.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form `host:port`: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("bad port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be within 1..65535")
	}
	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("incorrect IP-address %q", host)
	}

	a.Host = host
	a.Port = port
	return nil
}

// parseFlags reads the server flags from args (without the program name).
//
//	-a               listen address host:port
//	-d               database DSN
//	-driver          database driver (pgx or sqlite3)
//	-max-open-conns  database pool size
//	-c, -config      JSON config file
//	-token-sign-key  bearer envelope signing key
//	-token-issuer    bearer envelope issuer
//	-token-duration  bearer envelope lifetime (e.g. 1h)
//	-request-timeout per-request timeout (e.g. 30s)
//	-cache-warm-up   preload the account cache at start
//	-log-level       minimum log level (debug, info, warn, error)
func parseFlags(args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var address NetAddress

	fs := flag.NewFlagSet("account-server", flag.ContinueOnError)
	fs.Var(&address, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "driver", "", "Database driver (pgx, sqlite3)")
	fs.IntVar(&cfg.Storage.DB.MaxOpenConns, "max-open-conns", 0, "Database pool size")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias of -c)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.BoolVar(&cfg.Cache.WarmUp, "cache-warm-up", false, "Preload the account cache at start")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg.Server.HTTPAddress = address.String()
	return cfg, nil
}
