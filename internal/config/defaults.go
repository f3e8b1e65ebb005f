package config

import "time"

const (
	DefaultBackendURL        = "http://localhost:5000"
	DefaultSessionCookieName = "session"
	DefaultTimeout           = 10 * time.Second
	DefaultCatalogSource     = "embedded"
	DefaultLogFileName       = "botdash.log"
)

// GetDefaultConfig returns the built-in configuration every other layer is merged onto.
func GetDefaultConfig() BotdashConfig {
	return BotdashConfig{
		Backend: BackendConfig{
			URL:               DefaultBackendURL,
			SessionCookieName: DefaultSessionCookieName,
			Timeout:           DefaultTimeout,
		},
		Catalog: CatalogConfig{
			Source: DefaultCatalogSource,
		},
		UI: UIConfig{
			Locale: LocaleEnglish,
		},
		Logging: LoggingConfig{
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}
