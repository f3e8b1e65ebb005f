package config

import (
	"time"
)

// BotdashConfig is the top-level configuration structure for botdash.
type BotdashConfig struct {
	Backend BackendConfig `yaml:"backend"`
	Catalog CatalogConfig `yaml:"catalog"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig describes how to reach the bot's dashboard API.
type BackendConfig struct {
	URL               string        `yaml:"url,omitempty"`               // e.g. "http://localhost:5000"
	SessionCookieName string        `yaml:"sessionCookieName,omitempty"` // Cookie the backend keeps its session in
	SessionCookie     string        `yaml:"sessionCookie,omitempty"`     // Cookie value copied from a logged-in browser
	Timeout           time.Duration `yaml:"timeout,omitempty"`           // Per-request timeout
}

// CatalogConfig points at the static command catalog document.
type CatalogConfig struct {
	Source string `yaml:"source,omitempty"` // File path or http(s) URL
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale string `yaml:"locale,omitempty"` // "en" or "id"
}

// LoggingConfig configures the log file written while a TUI owns the terminal.
type LoggingConfig struct {
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"maxSizeMB,omitempty"`
	MaxBackups int    `yaml:"maxBackups,omitempty"`
}

// Supported locales.
const (
	LocaleEnglish    = "en"
	LocaleIndonesian = "id"
)
