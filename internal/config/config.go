package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix             = "CATALOG"
	defaultHTTPAddress    = "0.0.0.0:8080"
	defaultDataDir        = "data"
	defaultDatabaseFile   = "cards.db"
	defaultLogLevel       = "info"
	defaultManifestURL    = "https://api.scryfall.com/bulk-data/default-cards"
	defaultUserAgent      = "BigDecksCatalog/1.1"
	defaultTimeoutSeconds = 35
	defaultBatchSize      = 1000
)

// AppConfig captures runtime configuration for the catalog service.
type AppConfig struct {
	HTTPAddress    string
	DataDir        string
	DatabasePath   string
	LogLevel       string
	ManifestURL    string
	UserAgent      string
	RequestTimeout time.Duration
	BatchSize      int
}

// ManifestPath returns the local path of the persisted manifest snapshot.
func (c AppConfig) ManifestPath() string {
	return filepath.Join(c.DataDir, "bulk_data.json")
}

// PayloadPath returns the local path of the persisted card payload.
func (c AppConfig) PayloadPath() string {
	return filepath.Join(c.DataDir, "default_cards.json")
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("data.dir", defaultDataDir)
	configViper.SetDefault("database.path", filepath.Join(defaultDataDir, defaultDatabaseFile))
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("bulk.manifest_url", defaultManifestURL)
	configViper.SetDefault("bulk.user_agent", defaultUserAgent)
	configViper.SetDefault("bulk.timeout_seconds", defaultTimeoutSeconds)
	configViper.SetDefault("ingest.batch_size", defaultBatchSize)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:    configViper.GetString("http.address"),
		DataDir:        configViper.GetString("data.dir"),
		DatabasePath:   configViper.GetString("database.path"),
		LogLevel:       configViper.GetString("log.level"),
		ManifestURL:    configViper.GetString("bulk.manifest_url"),
		UserAgent:      configViper.GetString("bulk.user_agent"),
		RequestTimeout: time.Duration(configViper.GetInt("bulk.timeout_seconds")) * time.Second,
		BatchSize:      configViper.GetInt("ingest.batch_size"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data.dir is required")
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	if strings.TrimSpace(c.ManifestURL) == "" {
		return fmt.Errorf("bulk.manifest_url is required")
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		return fmt.Errorf("bulk.user_agent is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("bulk.timeout_seconds must be positive")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("ingest.batch_size must be positive")
	}
	return nil
}
