package narrative

import (
	"os"
	"time"
)

// Config holds narrative generation settings.
type Config struct {
	// Timeout bounds a single Generate call, retries included.
	Timeout     time.Duration
	CacheSize   int
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the defaults used by the TUI and server.
func DefaultConfig() Config {
	return Config{
		Timeout:     30 * time.Second,
		CacheSize:   128,
		MaxTokens:   600,
		Temperature: 0.7,
	}
}

// ConfigFromEnv applies LIFEWHEEL_NARRATIVE_TIMEOUT to the defaults.
// Unparseable or non-positive values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LIFEWHEEL_NARRATIVE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}
