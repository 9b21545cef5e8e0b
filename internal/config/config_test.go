package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QME_DATASET_PATH", "/data/sales.csv")
	t.Setenv("QME_SERVER_PORT", "9090")
	t.Setenv("QME_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/sales.csv", cfg.Dataset.Path)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ",", cfg.Dataset.Delimiter)
}

func TestLoadMergesYAMLFile(t *testing.T) {
	content := `server:
  port: 9191
  read_timeout: 42s
security:
  enable_cors: false
  rate_limit:
    rps: 7.5
logging:
  level: warn
`
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("QME_DATASET_PATH", "/data/sales.csv")
	t.Setenv("QME_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	// File values win over built-in defaults, including false and duration
	// fields.
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 42*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Security.EnableCORS)
	assert.Equal(t, 7.5, cfg.Security.RateLimit.RPS)

	// Environment wins over the file; untouched fields keep their defaults.
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, 50, cfg.Security.RateLimit.Burst)
}

func TestLoadRequiresDatasetPath(t *testing.T) {
	t.Setenv("QME_DATASET_PATH", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset path")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default config is valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "missing dataset path",
			mutate:  func(c *Config) { c.Dataset.Path = "" },
			wantErr: "dataset path",
		},
		{
			name:    "multi-character delimiter",
			mutate:  func(c *Config) { c.Dataset.Delimiter = ";;" },
			wantErr: "delimiter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDelimiterRune(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ',', cfg.DelimiterRune())

	cfg.Dataset.Delimiter = ";"
	assert.Equal(t, ';', cfg.DelimiterRune())
}
