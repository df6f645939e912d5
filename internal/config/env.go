package config

import (
	"net"
	"strings"
)

// Environment variables consumed by the service.
const (
	EnvUpstreamURL = "AZURE_ML_ENDPOINT"
	EnvUpstreamKey = "AZURE_ML_KEY"
	EnvModelDir    = "AZUREML_MODEL_DIR"
	EnvHFToken     = "HUGGING_FACE_HUB_TOKEN"
	EnvPort        = "PORT"
	EnvConfig      = "ASKRELAY_CONFIG"
	EnvLogLevel    = "ASKRELAY_LOG_LEVEL"
	EnvBackendURL  = "ASKRELAY_BACKEND_URL"
	EnvBackendKey  = "ASKRELAY_BACKEND_KEY"
)

// Defaults applied when the corresponding fields are unset.
const (
	DefaultRelayAddr         = "0.0.0.0:5000"
	DefaultScorerAddr        = "0.0.0.0:5001"
	DefaultFixedSubdir       = "mistral-finetune-job-20250625100239"
	DefaultExpectedBaseModel = "mistralai/Mistral-7B-v0.1"
	DefaultBackendKind       = "openai"
	DefaultBackendURL        = "http://127.0.0.1:8000"
	DefaultScoreBodyBytes    = 1 << 20
	DefaultLogLevel          = "info"
	DefaultContextSize       = 2048
)

// ApplyEnv overrides cfg fields with non-empty environment values.
// PORT replaces only the port of the scorer address.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.LogLevel, EnvLogLevel)
	set(&cfg.Relay.UpstreamURL, EnvUpstreamURL)
	set(&cfg.Relay.UpstreamKey, EnvUpstreamKey)
	set(&cfg.Scorer.ModelDir, EnvModelDir)
	set(&cfg.Scorer.HFToken, EnvHFToken)
	set(&cfg.Scorer.Backend.URL, EnvBackendURL)
	set(&cfg.Scorer.Backend.APIKey, EnvBackendKey)
	if port := strings.TrimSpace(getenv(EnvPort)); port != "" {
		cfg.Scorer.Addr = withPort(cfg.Scorer.Addr, DefaultScorerAddr, port)
	}
}

// WithDefaults returns a copy of cfg with zero values replaced by defaults.
func WithDefaults(cfg Config) Config {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Relay.Addr == "" {
		cfg.Relay.Addr = DefaultRelayAddr
	}
	c := &cfg.Relay.CORS
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"POST", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type"}
	}
	s := &cfg.Scorer
	if s.Addr == "" {
		s.Addr = DefaultScorerAddr
	}
	if s.FixedSubdir == "" {
		s.FixedSubdir = DefaultFixedSubdir
	}
	if s.ExpectedBaseModel == "" {
		s.ExpectedBaseModel = DefaultExpectedBaseModel
	}
	if s.MaxBodyBytes <= 0 {
		s.MaxBodyBytes = DefaultScoreBodyBytes
	}
	b := &s.Backend
	if b.Kind == "" {
		b.Kind = DefaultBackendKind
	}
	if b.URL == "" && b.Kind != "llama" {
		b.URL = DefaultBackendURL
	}
	if b.ContextSize <= 0 {
		b.ContextSize = DefaultContextSize
	}
	return cfg
}

func withPort(addr, def, port string) string {
	if addr == "" {
		addr = def
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, port)
}
