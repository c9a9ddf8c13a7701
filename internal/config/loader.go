package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load builds the configuration from a YAML file overlaid with environment
// variables (ENV wins, then YAML, then the env-default tags). Deployments
// that only set DEEPL_KEY, DICTIONARY_PATH and DATABASE_DSN need no file at
// all: when CONFIG_PATH is unset and ./config.yaml is absent, ENV plus
// defaults is enough. An explicitly set CONFIG_PATH must exist.
func Load() (*Config, error) {
	var cfg Config

	path, explicit := configPath()
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func configPath() (path string, explicit bool) {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p, true
	}
	return "./config.yaml", false
}
