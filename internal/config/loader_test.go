package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content BotdashConfig) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	tempFilePath := filepath.Join(dir, filename)
	data, err := yaml.Marshal(&content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tempFilePath, data, 0644))
	return tempFilePath
}

// isolate points every config source at tempDir and clears the environment lookup.
func isolate(t *testing.T, tempDir string, env map[string]string) {
	t.Helper()
	originalHome := osUserHomeDir
	originalGetwd := osGetwd
	originalLookup := osLookupEnv
	t.Cleanup(func() {
		osUserHomeDir = originalHome
		osGetwd = originalGetwd
		osLookupEnv = originalLookup
	})

	osUserHomeDir = func() (string, error) { return filepath.Join(tempDir, "home"), nil }
	osGetwd = func() (string, error) { return filepath.Join(tempDir, "project"), nil }
	osLookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, nil)

	loaded, err := LoadConfig("")
	require.NoError(t, err)

	def := GetDefaultConfig()
	assert.Equal(t, def.Backend, loaded.Backend)
	assert.Equal(t, def.Catalog, loaded.Catalog)
	assert.Equal(t, def.UI, loaded.UI)
	assert.Equal(t, filepath.Join(tempDir, "home", userConfigDir, DefaultLogFileName), loaded.Logging.File)
	assert.NoError(t, loaded.Validate())
}

func TestLoadConfig_LayerPrecedence(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, nil)

	createTempConfigFile(t, filepath.Join(tempDir, "home", userConfigDir), configFileName, BotdashConfig{
		Backend: BackendConfig{URL: "http://user.example", SessionCookie: "user-cookie"},
		UI:      UIConfig{Locale: LocaleIndonesian},
	})
	createTempConfigFile(t, filepath.Join(tempDir, "project", projectConfigDir), configFileName, BotdashConfig{
		Backend: BackendConfig{URL: "http://project.example"},
		Catalog: CatalogConfig{Source: "project/commands.json"},
	})
	explicit := createTempConfigFile(t, filepath.Join(tempDir, "explicit"), "custom.yaml", BotdashConfig{
		Backend: BackendConfig{Timeout: 3 * time.Second},
	})

	loaded, err := LoadConfig(explicit)
	require.NoError(t, err)

	assert.Equal(t, "http://project.example", loaded.Backend.URL)
	assert.Equal(t, "user-cookie", loaded.Backend.SessionCookie)
	assert.Equal(t, DefaultSessionCookieName, loaded.Backend.SessionCookieName)
	assert.Equal(t, 3*time.Second, loaded.Backend.Timeout)
	assert.Equal(t, "project/commands.json", loaded.Catalog.Source)
	assert.Equal(t, LocaleIndonesian, loaded.UI.Locale)
}

func TestLoadConfig_EnvironmentWins(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, map[string]string{
		EnvBackendURL:     "https://env.example",
		EnvSessionCookie:  "env-cookie",
		EnvBackendTimeout: "1500ms",
		EnvLocale:         "ID",
	})
	createTempConfigFile(t, filepath.Join(tempDir, "home", userConfigDir), configFileName, BotdashConfig{
		Backend: BackendConfig{URL: "http://user.example"},
	})

	loaded, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", loaded.Backend.URL)
	assert.Equal(t, "env-cookie", loaded.Backend.SessionCookie)
	assert.Equal(t, 1500*time.Millisecond, loaded.Backend.Timeout)
	assert.Equal(t, LocaleIndonesian, loaded.UI.Locale)
}

func TestLoadConfig_InvalidTimeoutEnv(t *testing.T) {
	isolate(t, t.TempDir(), map[string]string{EnvBackendTimeout: "soon"})

	_, err := LoadConfig("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), EnvBackendTimeout)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, nil)

	dir := filepath.Join(tempDir, "project", projectConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("backend: [not, a, map"), 0644))

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	isolate(t, t.TempDir(), nil)

	_, err := LoadConfig("/does/not/exist.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_Dotenv(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, nil)
	// godotenv writes into the real process environment.
	osLookupEnv = os.LookupEnv
	t.Setenv(EnvCatalogSource, "")
	require.NoError(t, os.Unsetenv(EnvCatalogSource))

	projectDir := filepath.Join(tempDir, "project")
	require.NoError(t, os.MkdirAll(projectDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, dotenvFileName), []byte(EnvCatalogSource+"=dotenv/commands.json\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv(EnvCatalogSource) })

	loaded, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv/commands.json", loaded.Catalog.Source)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *BotdashConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *BotdashConfig) {}},
		{name: "https backend", mutate: func(c *BotdashConfig) { c.Backend.URL = "https://bot.example.com" }},
		{name: "ftp backend", mutate: func(c *BotdashConfig) { c.Backend.URL = "ftp://bot.example.com" }, wantErr: true},
		{name: "missing host", mutate: func(c *BotdashConfig) { c.Backend.URL = "http://" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *BotdashConfig) { c.Backend.Timeout = 0 }, wantErr: true},
		{name: "empty cookie name", mutate: func(c *BotdashConfig) { c.Backend.SessionCookieName = "" }, wantErr: true},
		{name: "unknown locale", mutate: func(c *BotdashConfig) { c.UI.Locale = "fr" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := GetDefaultConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
