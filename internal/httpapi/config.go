package httpapi

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds HTTP server settings.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// CORSOrigins lists allowed origins. Empty allows all.
	CORSOrigins []string

	Debug bool
}

// DefaultConfig serves on loopback only.
func DefaultConfig() Config {
	return Config{
		Host:         "127.0.0.1",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

// ConfigFromEnv applies LIFEWHEEL_SERVER_* and LIFEWHEEL_CORS_ORIGINS.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LIFEWHEEL_SERVER_HOST"); v != "" {
		cfg.Host = v
	}
	if v, err := strconv.Atoi(os.Getenv("LIFEWHEEL_SERVER_PORT")); err == nil && v > 0 {
		cfg.Port = v
	}
	if d, err := time.ParseDuration(os.Getenv("LIFEWHEEL_SERVER_READ_TIMEOUT")); err == nil && d > 0 {
		cfg.ReadTimeout = d
	}
	if d, err := time.ParseDuration(os.Getenv("LIFEWHEEL_SERVER_WRITE_TIMEOUT")); err == nil && d > 0 {
		cfg.WriteTimeout = d
	}
	for _, o := range strings.Split(os.Getenv("LIFEWHEEL_CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
