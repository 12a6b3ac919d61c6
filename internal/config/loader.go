package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MEALMAX_CONFIG is set
//  3. env (prefix MEALMAX_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MEALMAX_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: MEALMAX_ADDR, MEALMAX_DB_PATH, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("MEALMAX_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "mealmax_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%w: db_path must not be empty", ErrInvalidConfig)
	}
	switch c.RandomSource {
	case RandomSourceRemote, RandomSourceLocal:
	default:
		return fmt.Errorf("%w: random_source must be %q or %q", ErrInvalidConfig, RandomSourceRemote, RandomSourceLocal)
	}
	if c.RandomTimeoutMS <= 0 {
		return fmt.Errorf("%w: random_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.BattleScale <= 0 {
		return fmt.Errorf("%w: battle_scale must be positive", ErrInvalidConfig)
	}
	return nil
}
