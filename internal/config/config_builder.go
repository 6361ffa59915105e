// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type configSource struct {
	name string
	cfg  *StructuredConfig
}

// configBuilder loads partial configs from each source in turn. On build
// they are merged in load order and a field keeps the first non-zero value.
type configBuilder struct {
	sources []configSource
	err     error

	// environ replaces the process environment when set.
	environ map[string]string
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{}
}

func (b *configBuilder) load(name string, fn func() (*StructuredConfig, error)) *configBuilder {
	cfg, err := fn()
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%s: %w", name, err))
		return b
	}

	b.sources = append(b.sources, configSource{name: name, cfg: cfg})
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	return b.load("env", func() (*StructuredConfig, error) {
		cfg := &StructuredConfig{}
		return cfg, parseEnv(cfg, b.environ)
	})
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	return b.load("flags", func() (*StructuredConfig, error) {
		return parseFlags(args)
	})
}

// withJSON loads the file named by the first source that sets JSONFilePath.
func (b *configBuilder) withJSON() *configBuilder {
	path := b.jsonPath()
	if path == "" {
		return b
	}

	return b.load("json", func() (*StructuredConfig, error) {
		return parseJSON(path)
	})
}

func (b *configBuilder) jsonPath() string {
	for _, src := range b.sources {
		if src.cfg.JSONFilePath != "" {
			return src.cfg.JSONFilePath
		}
	}

	return ""
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error loading config: %w", b.err)
	}

	merged := &StructuredConfig{}
	for _, src := range b.sources {
		if err := mergo.Merge(merged, src.cfg); err != nil {
			return nil, fmt.Errorf("error merging %s config: %w", src.name, err)
		}
	}

	return merged, merged.validate()
}
