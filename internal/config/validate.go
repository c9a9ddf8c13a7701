package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	if c.Database.DSN != "" {
		if c.Database.MaxConns < 1 {
			return fmt.Errorf("database.max_conns must be >= 1 (got %d)", c.Database.MaxConns)
		}
		if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", c.Database.MinConns)
		}
	}

	if c.DeepL.URL == "" {
		return fmt.Errorf("deepl.url must not be empty")
	}
	if c.DeepL.SourceLang == "" || c.DeepL.TargetLang == "" {
		return fmt.Errorf("deepl.source_lang and deepl.target_lang must not be empty")
	}
	if c.DeepL.Timeout <= 0 {
		return fmt.Errorf("deepl.timeout must be > 0 (got %v)", c.DeepL.Timeout)
	}

	return nil
}
