// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// jsonConfig is the layout of the JSON configuration file. Unknown keys are
// rejected.
type jsonConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
	} `json:"app"`

	Storage struct {
		DB struct {
			Driver       string `json:"driver"`
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`

	Cache struct {
		WarmUp bool `json:"warm_up"`
	} `json:"cache"`
}

func (j jsonConfig) structured() *StructuredConfig {
	cfg := &StructuredConfig{}

	cfg.App.TokenSignKey = j.App.TokenSignKey
	cfg.App.TokenIssuer = j.App.TokenIssuer
	cfg.App.TokenDuration = time.Duration(j.App.TokenDuration)
	cfg.App.Version = j.App.Version
	cfg.App.LogLevel = j.App.LogLevel

	cfg.Storage.DB.Driver = j.Storage.DB.Driver
	cfg.Storage.DB.DSN = j.Storage.DB.DSN
	cfg.Storage.DB.MaxOpenConns = j.Storage.DB.MaxOpenConns

	cfg.Server.HTTPAddress = j.Server.HTTPAddress
	cfg.Server.RequestTimeout = time.Duration(j.Server.RequestTimeout)

	cfg.Cache.WarmUp = j.Cache.WarmUp

	return cfg
}

func parseJSON(path string) (*StructuredConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()

	var raw jsonConfig
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	return raw.structured(), nil
}

// Duration is a time.Duration read from JSON either as a Go duration
// string ("1h30m") or as a number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		parsed, err := time.ParseDuration(text)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	var nanos int64
	if err := json.Unmarshal(b, &nanos); err != nil {
		return fmt.Errorf("duration must be a string or an integer: %w", err)
	}
	*d = Duration(nanos)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
