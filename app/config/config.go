package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting of the blog.
type Config struct {
	Env             string        `mapstructure:"env"`
	HTTPAddr        string        `mapstructure:"http_addr"`
	DBPath          string        `mapstructure:"db_path"`
	TimeZone        string        `mapstructure:"time_zone"`
	LoginURL        string        `mapstructure:"login_url"`
	SessionSecret   string        `mapstructure:"session_secret"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	CommentRateRPM  int           `mapstructure:"comment_rate_rpm"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	location *time.Location
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("db_path", "data/badger")
	v.SetDefault("time_zone", "UTC")
	v.SetDefault("login_url", "/login/")
	v.SetDefault("session_secret", "")
	v.SetDefault("session_ttl", "24h")
	v.SetDefault("comment_rate_rpm", 30)
	v.SetDefault("shutdown_timeout", "10s")
}

// Load reads defaults, then the config file, then QUILLBLOG_* environment
// variables. An empty path searches for quillblog.yaml in . and ./config.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("quillblog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("QUILLBLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.SessionSecret == "" && !cfg.IsProd() {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.SessionSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings and resolves the time zone.
func (c *Config) Validate() error {
	switch c.Env {
	case "dev", "test", "prod":
	default:
		return fmt.Errorf("invalid env %q (must be dev, test, or prod)", c.Env)
	}
	if c.HTTPAddr == "" {
		return errors.New("http_addr is required")
	}
	if c.DBPath == "" {
		return errors.New("db_path is required")
	}
	if !strings.HasPrefix(c.LoginURL, "/") {
		return fmt.Errorf("login_url %q must be a local path", c.LoginURL)
	}
	if c.SessionSecret == "" {
		return errors.New("session_secret is required in prod")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if c.CommentRateRPM < 0 {
		return errors.New("comment_rate_rpm cannot be negative")
	}

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid time_zone %q: %w", c.TimeZone, err)
	}
	c.location = loc
	return nil
}

// Location is the zone timestamps are rendered in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
