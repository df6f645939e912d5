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

// Config holds runtime parameters for the relay and the scorer.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	LogLevel string       `json:"log_level" yaml:"log_level" toml:"log_level"`
	Relay    RelayConfig  `json:"relay" yaml:"relay" toml:"relay"`
	Scorer   ScorerConfig `json:"scorer" yaml:"scorer" toml:"scorer"`
}

// RelayConfig configures the /api/ask passthrough.
type RelayConfig struct {
	Addr        string `json:"addr" yaml:"addr" toml:"addr"`
	UpstreamURL string `json:"upstream_url" yaml:"upstream_url" toml:"upstream_url"`
	UpstreamKey string `json:"upstream_key" yaml:"upstream_key" toml:"upstream_key"`
	// TimeoutSeconds bounds one upstream call; 0 disables.
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	// MaxBodyBytes limits the forwarded request body; 0 means unlimited.
	MaxBodyBytes int64      `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORS         CORSConfig `json:"cors" yaml:"cors" toml:"cors"`
}

// CORSConfig mirrors the options of github.com/go-chi/cors that we expose.
type CORSConfig struct {
	Disabled       bool     `json:"disabled" yaml:"disabled" toml:"disabled"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers"`
}

// ScorerConfig configures model initialization and the /score endpoint.
type ScorerConfig struct {
	Addr              string        `json:"addr" yaml:"addr" toml:"addr"`
	ModelDir          string        `json:"model_dir" yaml:"model_dir" toml:"model_dir"`
	FixedSubdir       string        `json:"fixed_subdir" yaml:"fixed_subdir" toml:"fixed_subdir"`
	ExpectedBaseModel string        `json:"expected_base_model" yaml:"expected_base_model" toml:"expected_base_model"`
	HFToken           string        `json:"hf_token" yaml:"hf_token" toml:"hf_token"`
	MaxBodyBytes      int64         `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	Backend           BackendConfig `json:"backend" yaml:"backend" toml:"backend"`
}

// BackendConfig selects and configures the text-generation backend.
type BackendConfig struct {
	// Kind is one of "openai", "tgi" or "llama".
	Kind                  string `json:"kind" yaml:"kind" toml:"kind"`
	URL                   string `json:"url" yaml:"url" toml:"url"`
	APIKey                string `json:"api_key" yaml:"api_key" toml:"api_key"`
	Model                 string `json:"model" yaml:"model" toml:"model"`
	TimeoutSeconds        int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
	ConnectTimeoutSeconds int    `json:"connect_timeout_seconds" yaml:"connect_timeout_seconds" toml:"connect_timeout_seconds"`
	// llama only
	BaseModelPath string `json:"base_model_path" yaml:"base_model_path" toml:"base_model_path"`
	ContextSize   int    `json:"context_size" yaml:"context_size" toml:"context_size"`
	Threads       int    `json:"threads" yaml:"threads" toml:"threads"`
	GPULayers     int    `json:"gpu_layers" yaml:"gpu_layers" toml:"gpu_layers"`
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

// Resolve loads path (when non-empty), applies environment overrides and fills defaults.
func Resolve(path string) (Config, error) {
	var cfg Config
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return cfg, err
		}
	}
	ApplyEnv(&cfg, os.Getenv)
	return WithDefaults(cfg), nil
}
