package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"toastd/internal/common/fsutil"
)

// Defaults applied by WithDefaults when the corresponding field is unset.
const (
	DefaultAddr         = ":8080"
	DefaultExpiryMS     = 3500
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultMaxBodyBytes = 1 << 20
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr         string   `json:"addr" yaml:"addr" toml:"addr"`
	ExpiryMS     int      `json:"expiry_ms" yaml:"expiry_ms" toml:"expiry_ms"`
	Autostart    bool     `json:"autostart" yaml:"autostart" toml:"autostart"`
	LogLevel     string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat    string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORSEnabled  bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	CORSMethods  []string `json:"cors_methods" yaml:"cors_methods" toml:"cors_methods"`
	CORSHeaders  []string `json:"cors_headers" yaml:"cors_headers" toml:"cors_headers"`
}

// SearchPaths lists the locations Discover checks, in order.
var SearchPaths = []string{
	"toastd.yaml",
	"toastd.toml",
	"toastd.json",
	"~/.config/toastd/config.yaml",
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Discover returns the first existing path from SearchPaths, or "" if none.
func Discover() string {
	for _, p := range SearchPaths {
		full, err := fsutil.ExpandHome(p)
		if err != nil {
			continue
		}
		if fsutil.PathExists(full) {
			return full
		}
	}
	return ""
}

// ApplyEnv overrides fields from TOASTD_ADDR and TOASTD_LOG_LEVEL when set.
func (c Config) ApplyEnv() Config {
	if v := os.Getenv("TOASTD_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("TOASTD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return c
}

// WithDefaults fills unset fields with package defaults.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ExpiryMS <= 0 {
		c.ExpiryMS = DefaultExpiryMS
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}

// ExpiryWindow returns ExpiryMS as a duration.
func (c Config) ExpiryWindow() time.Duration {
	return time.Duration(c.ExpiryMS) * time.Millisecond
}
