package assessment

import (
	"os"
	"strconv"
	"time"

	"github.com/abhisek/lifewheel/internal/history"
)

// Config tunes the assessment flow.
type Config struct {
	// SettleDuration is how long the processing animation runs before
	// the result is shown. Default: 4s.
	SettleDuration time.Duration

	// TrendWindow is the number of entries plotted on the result screen.
	TrendWindow int
}

// DefaultConfig returns the stock flow settings.
func DefaultConfig() Config {
	return Config{
		SettleDuration: 4 * time.Second,
		TrendWindow:    history.DefaultWindow,
	}
}

// ConfigFromEnv overlays LIFEWHEEL_SETTLE_DURATION and
// LIFEWHEEL_TREND_WINDOW on the defaults. Malformed values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LIFEWHEEL_SETTLE_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.SettleDuration = d
		}
	}
	if v := os.Getenv("LIFEWHEEL_TREND_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TrendWindow = n
		}
	}
	return cfg
}
