package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/reputation-cli/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Provider   ProviderConfig   `yaml:"provider" mapstructure:"provider"`
	Outscraper OutscraperConfig `yaml:"outscraper" mapstructure:"outscraper"`
	Google     GoogleConfig     `yaml:"google" mapstructure:"google"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Report     ReportConfig     `yaml:"report" mapstructure:"report"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// ProviderConfig selects and shapes review acquisition.
type ProviderConfig struct {
	Kind             string `yaml:"kind" mapstructure:"kind"`
	PollIntervalSecs int    `yaml:"poll_interval_secs" mapstructure:"poll_interval_secs"`
	PollAttempts     int    `yaml:"poll_attempts" mapstructure:"poll_attempts"`
	Language         string `yaml:"language" mapstructure:"language"`
	Region           string `yaml:"region" mapstructure:"region"`
	QuerySuffix      string `yaml:"query_suffix" mapstructure:"query_suffix"`
}

// PollInterval returns the poll wait as a duration.
func (p ProviderConfig) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalSecs) * time.Second
}

// OutscraperConfig holds Outscraper API settings.
type OutscraperConfig struct {
	Key          string `yaml:"key" mapstructure:"key"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	ReviewsLimit int    `yaml:"reviews_limit" mapstructure:"reviews_limit"`
}

// GoogleConfig holds Google Places API settings.
type GoogleConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings for the qualitative step.
type AnthropicConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// ReportConfig controls report files.
type ReportConfig struct {
	OutputDir  string `yaml:"output_dir" mapstructure:"output_dir"`
	SampleSize int    `yaml:"sample_size" mapstructure:"sample_size"`
}

// StoreConfig configures the report history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP front door.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RatePerSec     float64  `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst          int      `yaml:"burst" mapstructure:"burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Provider kinds.
const (
	ProviderOutscraper = "outscraper"
	ProviderGoogle     = "google"
)

// Store drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// legacyEnv maps config keys to the unprefixed variables older deployments set.
var legacyEnv = map[string]string{
	"outscraper.key":     "OUTSCRAPER_API_KEY",
	"google.key":         "GOOGLE_PLACES_API_KEY",
	"anthropic.key":      "ANTHROPIC_API_KEY",
	"store.database_url": "DATABASE_URL",
}

// Load reads configuration from .env, an optional config.yaml and the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REPUTATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := "REPUTATION_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Defaults
	v.SetDefault("provider.kind", ProviderOutscraper)
	v.SetDefault("provider.poll_interval_secs", 5)
	v.SetDefault("provider.poll_attempts", 18)
	v.SetDefault("provider.language", "es")
	v.SetDefault("provider.region", "CO")
	v.SetDefault("provider.query_suffix", "dental clinic")
	v.SetDefault("outscraper.base_url", "https://api.app.outscraper.com")
	v.SetDefault("outscraper.reviews_limit", 50)
	v.SetDefault("google.base_url", "https://places.googleapis.com/v1")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 2000)
	v.SetDefault("anthropic.temperature", 0.3)
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("report.sample_size", 10)
	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.rate_per_sec", 1.0)
	v.SetDefault("server.burst", 5)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("batch.max_concurrent", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command needs. Missing credentials wrap
// model.ErrCredentialMissing; other problems are plain validation errors.
// Modes: analyze, batch, serve, reports.
func (c *Config) Validate(mode string) error {
	var missing, invalid []string

	checkProvider := func() {
		switch c.Provider.Kind {
		case ProviderOutscraper:
			if c.Outscraper.Key == "" {
				missing = append(missing, "outscraper.key is required")
			}
		case ProviderGoogle:
			if c.Google.Key == "" {
				missing = append(missing, "google.key is required")
			}
		default:
			invalid = append(invalid, "provider.kind must be outscraper or google")
		}
		if c.Provider.PollAttempts < 1 {
			invalid = append(invalid, "provider.poll_attempts must be >= 1")
		}
	}

	switch mode {
	case "analyze":
		checkProvider()
	case "batch":
		checkProvider()
		if c.Batch.MaxConcurrent < 1 || c.Batch.MaxConcurrent > 50 {
			invalid = append(invalid, "batch.max_concurrent must be between 1 and 50")
		}
	case "serve":
		checkProvider()
		if c.Server.Port <= 0 {
			invalid = append(invalid, "server.port must be > 0")
		}
		if c.Server.RatePerSec <= 0 {
			invalid = append(invalid, "server.rate_per_sec must be > 0")
		}
	case "reports":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Store.Driver {
	case DriverFile, DriverSQLite:
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			missing = append(missing, "store.database_url is required")
		}
	default:
		invalid = append(invalid, "store.driver must be file, sqlite or postgres")
	}

	if len(invalid) > 0 {
		return eris.Errorf("config: %s", strings.Join(append(invalid, missing...), "; "))
	}
	if len(missing) > 0 {
		return eris.Wrapf(model.ErrCredentialMissing, "config: %s", strings.Join(missing, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
