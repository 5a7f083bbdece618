// Package config handles configuration for the chat client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the chat CLI.
//
// Fields:
//   - ServerURL: base URL of the authentication backend (e.g. "http://127.0.0.1:5000").
//   - DatabaseDSN: path of the local SQLite database holding persisted state.
//   - AssistantURL: endpoint of the remote generative-text service; when
//     empty, a canned offline assistant is used.
//   - AssistantKey: API key sent to the assistant endpoint.
//   - RequestTimeout: per-request deadline for remote calls.
type Config struct {
	ServerURL      string
	DatabaseDSN    string
	AssistantURL   string
	AssistantKey   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.DatabaseDSN = "chat.db"
	c.AssistantURL = ""
	c.AssistantKey = ""
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
