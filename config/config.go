// Copyright 2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const Prefix = "VTLINE_"

// Config holds the harness settings. Every field can be set from the
// environment with the VTLINE_ prefix, command line flags override them.
type Config struct {
	// Settle is how long to wait for the first output byte after an input.
	Settle time.Duration `env:"SETTLE,default=50ms"`
	// Idle is the quiet gap that ends a drain once output started.
	Idle        time.Duration `env:"IDLE,default=10ms"`
	Capacity    int           `env:"CAPACITY,default=1000"`
	PTY         bool          `env:"PTY,default=false"`
	LogLevel    string        `env:"LOG_LEVEL,default=info"`
	NoColor     bool          `env:"NO_COLOR,default=false"`
	ExitTimeout time.Duration `env:"EXIT_TIMEOUT,default=1s"`
}

func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var c Config
	if err := envconfig.ProcessWith(ctx, &c, envconfig.PrefixLookuper(Prefix, l)); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Settle <= 0 {
		return fmt.Errorf("settle must be positive, got %s", c.Settle)
	}
	if c.Idle <= 0 {
		return fmt.Errorf("idle must be positive, got %s", c.Idle)
	}
	if c.Capacity < 2 {
		return fmt.Errorf("capacity must be at least 2, got %d", c.Capacity)
	}
	if c.ExitTimeout <= 0 {
		return fmt.Errorf("exit timeout must be positive, got %s", c.ExitTimeout)
	}
	return nil
}
