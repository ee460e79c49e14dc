package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/stat-atlas/pkg/store/upstream"
	"github.com/spf13/viper"
)

type Config struct {
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type UpstreamConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Retries    int           `mapstructure:"retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	Backoff    string        `mapstructure:"backoff"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type StorageConfig struct {
	DbPath string `mapstructure:"db_path"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var envBindings = map[string]string{
	"upstream.base_url":       "BASE_URL",
	"upstream.retries":        "RETRIES",
	"upstream.retry_delay":    "RETRY_DELAY",
	"upstream.backoff":        "RETRY_BACKOFF",
	"upstream.timeout":        "UPSTREAM_TIMEOUT",
	"server.host":             "SERVER_HOST",
	"server.port":             "SERVER_PORT",
	"server.shutdown_timeout": "SERVER_SHUTDOWN_TIMEOUT",
	"storage.db_path":         "DB_PATH",
	"cors.allowed_origins":    "CORS_ALLOWED_ORIGINS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("upstream.retries", upstream.DefaultRetries)
	v.SetDefault("upstream.retry_delay", upstream.DefaultRetryDelay)
	v.SetDefault("upstream.backoff", "fixed")
	v.SetDefault("upstream.timeout", upstream.DefaultTimeout)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("storage.db_path", "stat-atlas.db")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost"})
}

// Load reads defaults, then the YAML file at path when path is not empty,
// then environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.CORS.AllowedOrigins = cleanList(cfg.CORS.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.Upstream.BaseURL == "" {
		errs = append(errs, errors.New("upstream.base_url (BASE_URL) is required"))
	} else if u, err := url.Parse(c.Upstream.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("upstream.base_url %q is not an absolute URL", c.Upstream.BaseURL))
	}
	if c.Upstream.Retries < 1 {
		errs = append(errs, fmt.Errorf("upstream.retries must be at least 1, got %d", c.Upstream.Retries))
	}
	if c.Upstream.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("upstream.retry_delay must not be negative"))
	}
	if _, err := upstream.NewBackoff(c.Upstream.Backoff, c.Upstream.RetryDelay); err != nil {
		errs = append(errs, fmt.Errorf("upstream.backoff: %w", err))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if c.Storage.DbPath == "" {
		errs = append(errs, errors.New("storage.db_path is required"))
	}

	return errors.Join(errs...)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
