package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "log_level: debug\nrelay:\n  addr: :9999\n  upstream_url: http://up/score\n  upstream_key: k1\nscorer:\n  model_dir: /models\n  backend:\n    kind: tgi\n    url: http://tgi:8080\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Relay.Addr != ":9999" || cfg.Relay.UpstreamURL != "http://up/score" || cfg.Relay.UpstreamKey != "k1" {
		t.Fatalf("unexpected relay cfg: %+v", cfg)
	}
	if cfg.Scorer.ModelDir != "/models" || cfg.Scorer.Backend.Kind != "tgi" || cfg.Scorer.Backend.URL != "http://tgi:8080" {
		t.Fatalf("unexpected scorer cfg: %+v", cfg.Scorer)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"relay":{"addr":":7070","timeout_seconds":3},"scorer":{"fixed_subdir":"job-1","backend":{"kind":"llama","context_size":4096}}}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Relay.Addr != ":7070" || cfg.Relay.TimeoutSeconds != 3 || cfg.Scorer.FixedSubdir != "job-1" || cfg.Scorer.Backend.ContextSize != 4096 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "log_level=\"warn\"\n[relay]\naddr=\":8081\"\n[relay.cors]\nallowed_origins=[\"https://app.example\"]\n[scorer]\nexpected_base_model=\"base/x\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.Relay.Addr != ":8081" || cfg.Scorer.ExpectedBaseModel != "base/x" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Relay.CORS.AllowedOrigins) != 1 || cfg.Relay.CORS.AllowedOrigins[0] != "https://app.example" {
		t.Fatalf("unexpected cors: %+v", cfg.Relay.CORS)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	bad := writeTempFile(t, d, "bad.json", "{")
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestResolve_FileThenEnvThenDefaults(t *testing.T) {
	for _, k := range []string{EnvUpstreamURL, EnvUpstreamKey, EnvModelDir, EnvHFToken, EnvPort, EnvLogLevel, EnvBackendURL, EnvBackendKey} {
		t.Setenv(k, "")
	}
	p := writeTempFile(t, t.TempDir(), "askrelay.yaml", "relay:\n  upstream_url: https://file.example/score\n  upstream_key: file-key\nscorer:\n  addr: 127.0.0.1:6000\n")
	t.Setenv(EnvUpstreamKey, "env-key")
	t.Setenv(EnvPort, "7000")

	cfg, err := Resolve(p)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Relay.UpstreamURL != "https://file.example/score" || cfg.Relay.UpstreamKey != "env-key" {
		t.Fatalf("unexpected relay config: %+v", cfg.Relay)
	}
	if cfg.Scorer.Addr != "127.0.0.1:7000" {
		t.Fatalf("scorer addr=%q", cfg.Scorer.Addr)
	}
	if cfg.Relay.Addr != DefaultRelayAddr || cfg.Scorer.FixedSubdir != DefaultFixedSubdir {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestResolve_NoFile(t *testing.T) {
	t.Setenv(EnvUpstreamURL, "https://env.example/score")
	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Relay.UpstreamURL != "https://env.example/score" || cfg.LogLevel == "" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if _, err := Resolve("/does/not/exist.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
