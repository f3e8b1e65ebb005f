package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd
var osLookupEnv = os.LookupEnv

const (
	userConfigDir    = ".config/botdash"
	projectConfigDir = ".botdash"
	configFileName   = "config.yaml"
	dotenvFileName   = ".env"
)

// Environment variables consulted after all files have been merged.
const (
	EnvBackendURL        = "BOTDASH_BACKEND_URL"
	EnvSessionCookie     = "BOTDASH_SESSION_COOKIE"
	EnvSessionCookieName = "BOTDASH_SESSION_COOKIE_NAME"
	EnvBackendTimeout    = "BOTDASH_BACKEND_TIMEOUT"
	EnvCatalogSource     = "BOTDASH_CATALOG"
	EnvLocale            = "BOTDASH_LOCALE"
)

// LoadConfig loads the botdash configuration by layering default, user,
// project and explicit settings, then environment overrides. A .env file in
// the working directory is loaded into the environment first when present.
func LoadConfig(explicitPath string) (BotdashConfig, error) {
	config := GetDefaultConfig()

	if err := loadDotenv(); err != nil {
		return BotdashConfig{}, err
	}

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if config, err = mergeFileIfExists(config, userConfigPath); err != nil {
		return BotdashConfig{}, err
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if config, err = mergeFileIfExists(config, projectConfigPath); err != nil {
		return BotdashConfig{}, err
	}

	if explicitPath != "" {
		explicitConfig, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return BotdashConfig{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, explicitConfig)
	}

	config, err = applyEnv(config)
	if err != nil {
		return BotdashConfig{}, err
	}

	if config.Logging.File == "" {
		if dir, err := GetUserConfigDir(); err == nil {
			config.Logging.File = filepath.Join(dir, DefaultLogFileName)
		}
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

var getDotenvPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, dotenvFileName), nil
}

func loadDotenv() error {
	path, err := getDotenvPath()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	// Load never overrides variables that are already set.
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

func mergeFileIfExists(base BotdashConfig, path string) (BotdashConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return BotdashConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return mergeConfigs(base, overlay), nil
}

// loadConfigFromFile loads a BotdashConfig from a YAML file.
func loadConfigFromFile(filePath string) (BotdashConfig, error) {
	var config BotdashConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return BotdashConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return BotdashConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in
// overlay leave base untouched.
func mergeConfigs(base, overlay BotdashConfig) BotdashConfig {
	merged := base

	if overlay.Backend.URL != "" {
		merged.Backend.URL = overlay.Backend.URL
	}
	if overlay.Backend.SessionCookieName != "" {
		merged.Backend.SessionCookieName = overlay.Backend.SessionCookieName
	}
	if overlay.Backend.SessionCookie != "" {
		merged.Backend.SessionCookie = overlay.Backend.SessionCookie
	}
	if overlay.Backend.Timeout != 0 {
		merged.Backend.Timeout = overlay.Backend.Timeout
	}

	if overlay.Catalog.Source != "" {
		merged.Catalog.Source = overlay.Catalog.Source
	}

	if overlay.UI.Locale != "" {
		merged.UI.Locale = overlay.UI.Locale
	}

	if overlay.Logging.File != "" {
		merged.Logging.File = overlay.Logging.File
	}
	if overlay.Logging.MaxSizeMB != 0 {
		merged.Logging.MaxSizeMB = overlay.Logging.MaxSizeMB
	}
	if overlay.Logging.MaxBackups != 0 {
		merged.Logging.MaxBackups = overlay.Logging.MaxBackups
	}

	return merged
}

func applyEnv(config BotdashConfig) (BotdashConfig, error) {
	if v, ok := osLookupEnv(EnvBackendURL); ok && v != "" {
		config.Backend.URL = v
	}
	if v, ok := osLookupEnv(EnvSessionCookie); ok && v != "" {
		config.Backend.SessionCookie = v
	}
	if v, ok := osLookupEnv(EnvSessionCookieName); ok && v != "" {
		config.Backend.SessionCookieName = v
	}
	if v, ok := osLookupEnv(EnvBackendTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return BotdashConfig{}, fmt.Errorf("invalid %s %q: %w", EnvBackendTimeout, v, err)
		}
		config.Backend.Timeout = d
	}
	if v, ok := osLookupEnv(EnvCatalogSource); ok && v != "" {
		config.Catalog.Source = v
	}
	if v, ok := osLookupEnv(EnvLocale); ok && v != "" {
		config.UI.Locale = strings.ToLower(v)
	}
	return config, nil
}

// Validate reports the first setting that botdash cannot work with.
func (c BotdashConfig) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.url: host is required")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive, got %s", c.Backend.Timeout)
	}
	if c.Backend.SessionCookieName == "" {
		return fmt.Errorf("backend.sessionCookieName is required")
	}
	switch c.UI.Locale {
	case LocaleEnglish, LocaleIndonesian:
	default:
		return fmt.Errorf("ui.locale: unsupported locale %q", c.UI.Locale)
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
