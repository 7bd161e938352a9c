// Package config loads the server configuration file. The format is keyed
// on the file extension: yaml, json or toml.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	// Addr is the listen address for both HTTP and gRPC (one muxed port).
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// RepositoryDir is the model repository root.
	RepositoryDir string `json:"repository_dir" yaml:"repository_dir" toml:"repository_dir"`
	// LoadExisting loads every model already present in the repository at
	// startup.
	LoadExisting bool `json:"load_existing" yaml:"load_existing" toml:"load_existing"`
	// Monitor watches the repository for config.pbtxt changes.
	Monitor bool `json:"monitor" yaml:"monitor" toml:"monitor"`
	// LogLevel is one of debug|info|warn|error.
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	// LogFile, if set, receives rotated log output instead of stderr.
	LogFile string `json:"log_file" yaml:"log_file" toml:"log_file"`
	// MaxBodyBytes caps JSON request bodies (0 = default 1 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`

	CORS CORSConfig `json:"cors" yaml:"cors" toml:"cors"`
}

// CORSConfig is the opt-in CORS policy for the HTTP surface.
type CORSConfig struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
