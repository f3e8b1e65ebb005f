package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Theme preference values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// DefaultTheme is used whenever nothing valid has been persisted.
const DefaultTheme = ThemeLight

const stateFileName = "state.yaml"

// ThemeStore persists the chosen display theme.
type ThemeStore interface {
	Theme() (string, error)
	SetTheme(theme string) error
}

// NormalizeTheme maps anything that is not a known theme to DefaultTheme.
func NormalizeTheme(theme string) string {
	switch theme {
	case ThemeLight, ThemeDark:
		return theme
	default:
		return DefaultTheme
	}
}

// ToggleTheme returns the other theme.
func ToggleTheme(theme string) string {
	if NormalizeTheme(theme) == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ValidateTheme rejects values SetTheme would not accept.
func ValidateTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q (want %q or %q)", theme, ThemeLight, ThemeDark)
	}
	return nil
}

type fileDocument struct {
	Theme string `yaml:"theme,omitempty"`
}

// fileThemeStore keeps the preference in a small YAML document.
type fileThemeStore struct {
	path string
	mu   sync.Mutex
}

// NewFileThemeStore returns a store backed by state.yaml inside dir.
func NewFileThemeStore(dir string) ThemeStore {
	return &fileThemeStore{path: filepath.Join(dir, stateFileName)}
}

// Theme returns the persisted theme; a missing file yields DefaultTheme.
func (s *fileThemeStore) Theme() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultTheme, nil
	}
	if err != nil {
		return DefaultTheme, fmt.Errorf("read theme state: %w", err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return DefaultTheme, fmt.Errorf("parse theme state %s: %w", s.path, err)
	}
	return NormalizeTheme(doc.Theme), nil
}

// SetTheme writes the preference atomically.
func (s *fileThemeStore) SetTheme(theme string) error {
	if err := ValidateTheme(theme); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(fileDocument{Theme: theme})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write theme state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close theme state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace theme state: %w", err)
	}
	return nil
}

// memoryThemeStore is the in-process store used by tests.
type memoryThemeStore struct {
	theme string
	mu    sync.RWMutex
}

// NewMemoryThemeStore returns a store that forgets everything on exit.
func NewMemoryThemeStore(initial string) ThemeStore {
	return &memoryThemeStore{theme: NormalizeTheme(initial)}
}

func (s *memoryThemeStore) Theme() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme, nil
}

func (s *memoryThemeStore) SetTheme(theme string) error {
	if err := ValidateTheme(theme); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return nil
}
