package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `envconfig:"SERVER"`
	Dataset  DatasetConfig  `envconfig:"DATASET"`
	Security SecurityConfig `envconfig:"SECURITY"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatasetConfig locates the source data file. Path is the only required
// setting in the whole configuration; a missing path is an unrecoverable
// startup problem.
type DatasetConfig struct {
	Path      string `envconfig:"PATH"`
	Delimiter string `envconfig:"DELIMITER" default:","`
}

// SecurityConfig contains CORS and rate limiting configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	EnableCORS     bool            `envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `envconfig:"ENABLED" default:"true"`
	RPS     float64 `envconfig:"RPS" default:"100"`
	Burst   int     `envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `envconfig:"LEVEL" default:"info"`
	Output   string `envconfig:"OUTPUT" default:"stdout"`
	FilePath string `envconfig:"FILE_PATH" default:"logs/app.log"`
}

// Load loads configuration from environment variables (QME prefix) and, when
// present, a config.yaml file. Environment values take precedence over file
// values, file values over built-in defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("QME", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		merge(&cfg, file)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// fileConfig mirrors Config for the optional yaml overlay. Pointer fields
// make an absent key distinguishable from an explicit zero value, so a file
// can set false or 0 and still win over the envconfig default.
type fileConfig struct {
	Server struct {
		Port            *int          `yaml:"port"`
		ReadTimeout     *fileDuration `yaml:"read_timeout"`
		WriteTimeout    *fileDuration `yaml:"write_timeout"`
		IdleTimeout     *fileDuration `yaml:"idle_timeout"`
		RequestTimeout  *fileDuration `yaml:"request_timeout"`
		ShutdownTimeout *fileDuration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Dataset struct {
		Path      *string `yaml:"path"`
		Delimiter *string `yaml:"delimiter"`
	} `yaml:"dataset"`
	Security struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
		EnableCORS     *bool    `yaml:"enable_cors"`
		RateLimit      struct {
			Enabled *bool    `yaml:"enabled"`
			RPS     *float64 `yaml:"rps"`
			Burst   *int     `yaml:"burst"`
		} `yaml:"rate_limit"`
	} `yaml:"security"`
	Logging struct {
		Level    *string `yaml:"level"`
		Output   *string `yaml:"output"`
		FilePath *string `yaml:"file_path"`
	} `yaml:"logging"`
}

// fileDuration accepts "15s" style duration strings in yaml.
type fileDuration time.Duration

func (d *fileDuration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = fileDuration(v)
	return nil
}

// merge overlays file values onto cfg for every field whose environment
// variable is unset. The environment always wins.
func merge(cfg *Config, file fileConfig) {
	setInt(&cfg.Server.Port, file.Server.Port, "QME_SERVER_PORT")
	setDuration(&cfg.Server.ReadTimeout, file.Server.ReadTimeout, "QME_SERVER_READ_TIMEOUT")
	setDuration(&cfg.Server.WriteTimeout, file.Server.WriteTimeout, "QME_SERVER_WRITE_TIMEOUT")
	setDuration(&cfg.Server.IdleTimeout, file.Server.IdleTimeout, "QME_SERVER_IDLE_TIMEOUT")
	setDuration(&cfg.Server.RequestTimeout, file.Server.RequestTimeout, "QME_SERVER_REQUEST_TIMEOUT")
	setDuration(&cfg.Server.ShutdownTimeout, file.Server.ShutdownTimeout, "QME_SERVER_SHUTDOWN_TIMEOUT")

	setString(&cfg.Dataset.Path, file.Dataset.Path, "QME_DATASET_PATH")
	setString(&cfg.Dataset.Delimiter, file.Dataset.Delimiter, "QME_DATASET_DELIMITER")

	if len(file.Security.AllowedOrigins) > 0 && !envSet("QME_SECURITY_ALLOWED_ORIGINS") {
		cfg.Security.AllowedOrigins = file.Security.AllowedOrigins
	}
	setBool(&cfg.Security.EnableCORS, file.Security.EnableCORS, "QME_SECURITY_ENABLE_CORS")
	setBool(&cfg.Security.RateLimit.Enabled, file.Security.RateLimit.Enabled, "QME_SECURITY_RATE_LIMIT_ENABLED")
	setFloat(&cfg.Security.RateLimit.RPS, file.Security.RateLimit.RPS, "QME_SECURITY_RATE_LIMIT_RPS")
	setInt(&cfg.Security.RateLimit.Burst, file.Security.RateLimit.Burst, "QME_SECURITY_RATE_LIMIT_BURST")

	setString(&cfg.Logging.Level, file.Logging.Level, "QME_LOGGING_LEVEL")
	setString(&cfg.Logging.Output, file.Logging.Output, "QME_LOGGING_OUTPUT")
	setString(&cfg.Logging.FilePath, file.Logging.FilePath, "QME_LOGGING_FILE_PATH")
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func setInt(dst *int, v *int, envKey string) {
	if v != nil && !envSet(envKey) {
		*dst = *v
	}
}

func setString(dst *string, v *string, envKey string) {
	if v != nil && !envSet(envKey) {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool, envKey string) {
	if v != nil && !envSet(envKey) {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64, envKey string) {
	if v != nil && !envSet(envKey) {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *fileDuration, envKey string) {
	if v != nil && !envSet(envKey) {
		*dst = time.Duration(*v)
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path must be set (QME_DATASET_PATH)")
	}
	if len(c.Dataset.Delimiter) != 1 {
		return fmt.Errorf("dataset delimiter must be a single character, got %q", c.Dataset.Delimiter)
	}
	return nil
}

// DelimiterRune returns the configured flat-file delimiter.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Dataset.Delimiter {
		return r
	}
	return ','
}

func configFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns a default configuration suitable for tests.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Dataset: DatasetConfig{
			Path:      "data/sales.csv",
			Delimiter: ",",
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
	}
}
