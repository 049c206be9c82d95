package config

import (
	"fmt"
	"strings"
	"time"
)

// RateLimitConfig holds the per-client request budget applied by the HTTP server.
// Routes without a dedicated rule share the Max requests per Window budget.
type RateLimitConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Max      int    `mapstructure:"max"`
	WindowMS int    `mapstructure:"window_ms"`
	Allow    string `mapstructure:"allow"` // comma-separated client IPs never limited
	Block    string `mapstructure:"block"` // comma-separated client IPs always rejected
}

// Window returns WindowMS as a duration.
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMS) * time.Millisecond
}

// AllowList splits Allow into trimmed, non-empty entries.
func (c RateLimitConfig) AllowList() []string {
	return splitList(c.Allow)
}

// BlockList splits Block into trimmed, non-empty entries.
func (c RateLimitConfig) BlockList() []string {
	return splitList(c.Block)
}

// Validate checks the budget when limiting is enabled.
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Max < 1 {
		return fmt.Errorf("config error: rate_limit.max must be at least 1, got: %d", c.Max)
	}
	if c.WindowMS < 1 {
		return fmt.Errorf("config error: rate_limit.window_ms must be positive, got: %d", c.WindowMS)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
