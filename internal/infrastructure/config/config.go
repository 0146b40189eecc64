package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LinkedInOrigin is always allowed to call the API: the content script
// runs on linkedin.com pages.
const LinkedInOrigin = "https://www.linkedin.com"

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Media    MediaConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds local SQLite settings for the campaign store
type DatabaseConfig struct {
	Path string // file path, or ":memory:" for tests
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	ExtensionOrigins []string // extra CORS origins for the browser extension
	TrustedProxies   []string
}

// MediaConfig holds outbound image download settings
type MediaConfig struct {
	FetchTimeout time.Duration
	MaxBytes     int64
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with LEADBRIDGE_ prefix (e.g. LEADBRIDGE_APP_PORT)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("LEADBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The extension origin list historically arrives as a comma-separated
	// env var (CHROME_EXTENSION_ORIGIN); keep honoring it.
	_ = v.BindEnv("http.extension_origins", "LEADBRIDGE_HTTP_EXTENSION_ORIGINS", "CHROME_EXTENSION_ORIGIN")

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			ExtensionOrigins: splitOrigins(v.GetString("http.extension_origins")),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Media: MediaConfig{
			FetchTimeout: v.GetDuration("media.fetch_timeout"),
			MaxBytes:     v.GetInt64("media.max_bytes"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AllowedOrigins returns the full CORS allow-list: the fixed LinkedIn
// origin plus any configured extension origins.
func (c *Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.HTTP.ExtensionOrigins)+1)
	origins = append(origins, LinkedInOrigin)
	origins = append(origins, c.HTTP.ExtensionOrigins...)
	return origins
}

// splitOrigins splits a comma-separated origin list, trimming whitespace
// and dropping empty entries.
func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "leadbridge-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/campaigns.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// create_contact performs a chain of blocking CRM calls plus image
		// downloads; give it room.
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.Media.FetchTimeout == 0 {
		cfg.Media.FetchTimeout = 10 * time.Second
	}
	if cfg.Media.MaxBytes == 0 {
		cfg.Media.MaxBytes = 10 << 20 // 10MB
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	for _, origin := range c.HTTP.ExtensionOrigins {
		if origin == "*" {
			return fmt.Errorf("http.extension_origins cannot contain '*' (credentials are allowed, use explicit origins)")
		}
	}
	if c.Media.FetchTimeout < 0 {
		return fmt.Errorf("media.fetch_timeout cannot be negative")
	}
	return nil
}
