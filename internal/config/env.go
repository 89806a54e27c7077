package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the process configuration read from environment variables.
type Env struct {
	ConfigPath    string        `env:"BATTLE_CONFIG"         envDefault:"./battle_config.yaml"`
	DBPath        string        `env:"BATTLE_DB"             envDefault:"./data/battles.db"`
	Address       string        `env:"BATTLE_ADDR"`
	ActionTimeout time.Duration `env:"BATTLE_ACTION_TIMEOUT" envDefault:"2m"`
	ScanInterval  time.Duration `env:"BATTLE_SCAN_INTERVAL"  envDefault:"5s"`
}

// ParseEnv loads Env from the environment, applying defaults.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if e.ActionTimeout <= 0 {
		return Env{}, fmt.Errorf("parse env: BATTLE_ACTION_TIMEOUT must be positive")
	}
	if e.ScanInterval <= 0 {
		return Env{}, fmt.Errorf("parse env: BATTLE_SCAN_INTERVAL must be positive")
	}
	return e, nil
}
