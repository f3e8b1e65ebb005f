package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"botdash/internal/config"
	"botdash/internal/state"
	"botdash/pkg/logging"
)

// errNotTerminal is returned by interactive commands when stdout is not a TTY.
var errNotTerminal = errors.New("stdout is not a terminal; use --no-tui or 'botdash search'")

// For mocking in tests
var (
	isTerminal     = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) }
	loadConfig     = config.LoadConfig
	userConfigDir  = config.GetUserConfigDir
	newThemeStore  = func(dir string) state.ThemeStore { return state.NewFileThemeStore(dir) }
	defaultLogPath = func() string {
		dir, err := userConfigDir()
		if err != nil {
			return ""
		}
		return filepath.Join(dir, config.DefaultLogFileName)
	}
)

func logLevel() logging.LogLevel {
	if debugMode {
		return logging.LevelDebug
	}
	return logging.LevelInfo
}

// initCLILogging sends records to stderr for commands that print results.
func initCLILogging() {
	logging.InitForCLI(logLevel(), os.Stderr)
}

// initTUILogging moves records off the terminal while a program owns it.
func initTUILogging(cfg config.BotdashConfig) <-chan logging.LogEntry {
	path := cfg.Logging.File
	if path == "" {
		path = defaultLogPath()
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: log file disabled: %v\n", err)
			path = ""
		}
	}
	return logging.InitForTUI(logLevel(), logging.FileOptions{
		Path:       path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}

// loadValidConfig loads and validates the layered configuration.
func loadValidConfig() (config.BotdashConfig, error) {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return config.BotdashConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.BotdashConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// themeStore opens the persisted theme preference. Without a config
// directory the preference lives only for this run.
func themeStore() state.ThemeStore {
	dir, err := userConfigDir()
	if err != nil {
		logging.Warn("CLI", "Theme preference will not be saved: %v", err)
		return state.NewMemoryThemeStore(state.DefaultTheme)
	}
	return newThemeStore(dir)
}

// interactive reports whether a command should start its terminal UI.
func interactive() (bool, error) {
	if noTUI {
		return false, nil
	}
	if !isTerminal() {
		return false, errNotTerminal
	}
	return true, nil
}
