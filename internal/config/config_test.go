package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
swapi:
  base_url: http://localhost:8080/api/
  timeout: 5s
  rate_limit: 2.5
store:
  resolve_concurrency: 8
logging:
  level: debug
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.SWAPI.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.SWAPI.Timeout)
	assert.InDelta(t, 2.5, cfg.SWAPI.RateLimit, 0.001)
	assert.Equal(t, 8, cfg.Store.ResolveConcurrency)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	// Untouched sections keep defaults
	assert.Equal(t, 1, cfg.UI.DefaultPage)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "swapi:\n  base_url: http://file.example/api\n")
	t.Setenv("SWEXPLORER_SWAPI_BASE_URL", "http://env.example/api")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example/api", cfg.SWAPI.BaseURL)
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("SWEXPLORER_SWAPI_BASE_URL", "http://env.example/api")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-url", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--base-url", "http://flag.example/api"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example/api", cfg.SWAPI.BaseURL)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad url", "swapi:\n  base_url: not a url\n", "BaseURL"},
		{"zero concurrency", "store:\n  resolve_concurrency: 0\n", "ResolveConcurrency"},
		{"bad level", "logging:\n  level: chatty\n", "Level"},
		{"negative rate", "swapi:\n  rate_limit: -1\n", "RateLimit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SWAPI.BaseURL = "http://saved.example/api"
	cfg.SWAPI.Timeout = 12 * time.Second
	cfg.Store.ResolveConcurrency = 2

	path, err := SaveConfig(cfg, filepath.Join(t.TempDir(), "nested", "config.yaml"))
	require.NoError(t, err)

	loaded, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.SWAPI.BaseURL, loaded.SWAPI.BaseURL)
	assert.Equal(t, cfg.SWAPI.Timeout, loaded.SWAPI.Timeout)
	assert.Equal(t, 2, loaded.Store.ResolveConcurrency)
}
