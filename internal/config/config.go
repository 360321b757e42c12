package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName   = "swexplorer"
	envPrefix = "SWEXPLORER"

	// DefaultBaseURL is the public Star Wars API root
	DefaultBaseURL = "https://swapi.dev/api"
)

// Config holds all application configuration
type Config struct {
	SWAPI   SWAPIConfig   `mapstructure:"swapi"`
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SWAPIConfig holds API client configuration
type SWAPIConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RateLimit float64       `mapstructure:"rate_limit" validate:"gte=0"` // requests per second, 0 = unlimited
	UserAgent string        `mapstructure:"user_agent"`
}

// StoreConfig holds character store tuning
type StoreConfig struct {
	ResolveConcurrency int `mapstructure:"resolve_concurrency" validate:"gte=1"` // parallel reference lookups per character
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme" validate:"oneof=default mono"`
	DefaultPage int    `mapstructure:"default_page" validate:"gte=1"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=DEBUG INFO WARN WARNING ERROR"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		SWAPI: SWAPIConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   30 * time.Second,
			UserAgent: appName,
		},
		Store: StoreConfig{
			ResolveConcurrency: 4,
		},
		UI: UIConfig{
			Theme:       "default",
			DefaultPage: 1,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName, appName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName, appName+".log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"base-url":  "swapi.base_url",
	"log-level": "logging.level",
	"log-file":  "logging.file",
}

// LoadConfig loads configuration from defaults, file, environment and flags,
// in increasing order of precedence. An empty configFile searches the default
// locations; a missing file there is not an error.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (SWEXPLORER_SWAPI_BASE_URL, ...)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("swapi.base_url", cfg.SWAPI.BaseURL)
	v.SetDefault("swapi.timeout", cfg.SWAPI.Timeout)
	v.SetDefault("swapi.rate_limit", cfg.SWAPI.RateLimit)
	v.SetDefault("swapi.user_agent", cfg.SWAPI.UserAgent)
	v.SetDefault("store.resolve_concurrency", cfg.Store.ResolveConcurrency)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.default_page", cfg.UI.DefaultPage)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

func (c *Config) normalize() {
	c.SWAPI.BaseURL = strings.TrimRight(strings.TrimSpace(c.SWAPI.BaseURL), "/")
	c.Logging.Level = strings.ToUpper(strings.TrimSpace(c.Logging.Level))
}

// Validate checks field constraints declared in struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config value for %s: failed %q constraint", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SaveConfig writes the configuration to path, or to the default
// location when path is empty. Returns the file written.
func SaveConfig(cfg *Config, path string) (string, error) {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("swapi.base_url", cfg.SWAPI.BaseURL)
	v.Set("swapi.timeout", cfg.SWAPI.Timeout.String())
	v.Set("swapi.rate_limit", cfg.SWAPI.RateLimit)
	v.Set("swapi.user_agent", cfg.SWAPI.UserAgent)
	v.Set("store.resolve_concurrency", cfg.Store.ResolveConcurrency)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.default_page", cfg.UI.DefaultPage)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
