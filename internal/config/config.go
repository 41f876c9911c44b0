package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/factorpad/internal/gateway"
	"github.com/jeanpaul/factorpad/internal/request"
)

type Config struct {
	Endpoint         string `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout          string `yaml:"timeout,omitempty" mapstructure:"timeout"`
	Retries          int    `yaml:"retries" mapstructure:"retries"`
	Op               string `yaml:"op" mapstructure:"op"`
	ValidateRequests bool   `yaml:"validate_requests" mapstructure:"validate_requests"`
	LogLevel         string `yaml:"log_level" mapstructure:"log_level"`
	LogFile          string `yaml:"log_file,omitempty" mapstructure:"log_file"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	return &Config{
		Endpoint: gateway.DefaultEndpoint,
		Op:       string(request.OpMAP),
		LogLevel: "info",
	}
}

// Dir is the per-user configuration directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "factorpad")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "factorpad")
}

// DefaultPath is where `config init` writes when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads configuration from file and environment. An explicit path must
// exist; otherwise the usual search paths are tried and a missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix("FACTORPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper already knows about.
	for _, key := range []string{"endpoint", "timeout", "retries", "op", "validate_requests", "log_level", "log_file"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("config: %w", err)
		}
		// Config file not found; use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Endpoint = expandEnv(cfg.Endpoint)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors and fills in defaults for
// values left empty.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		c.Endpoint = gateway.DefaultEndpoint
	}
	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return fmt.Errorf("config: endpoint %q must be an http or https URL", c.Endpoint)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.Retries < 0 {
		return fmt.Errorf("config: retries must not be negative")
	}
	if c.Op == "" {
		c.Op = string(request.OpMAP)
	}
	op, err := request.ParseOp(c.Op)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Op = string(op)
	switch strings.ToLower(c.LogLevel) {
	case "":
		c.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level %q must be debug, info, warn or error", c.LogLevel)
	}
	return nil
}

// TimeoutDuration parses Timeout. Empty means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("config: invalid timeout %q", c.Timeout)
	}
	return d, nil
}

// Save writes the configuration as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
