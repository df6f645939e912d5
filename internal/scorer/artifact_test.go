package scorer

import (
	"os"
	"path/filepath"
	"testing"
)

func mkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.MkdirAll(filepath.Join(root, n), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", n, err)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestResolveArtifactDir_Fixed(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a-first", "job-fixed")
	dir, fallback, err := ResolveArtifactDir(root, "job-fixed")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if fallback || dir != filepath.Join(root, "job-fixed") {
		t.Fatalf("dir=%s fallback=%v", dir, fallback)
	}
}

func TestResolveArtifactDir_FallbackFirstSubdir(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "z-job", "b-job")
	writeFile(t, filepath.Join(root, "a-file.json"), "{}")
	dir, fallback, err := ResolveArtifactDir(root, "missing-job")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !fallback || dir != filepath.Join(root, "b-job") {
		t.Fatalf("dir=%s fallback=%v", dir, fallback)
	}
}

func TestResolveArtifactDir_NoSubdir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "adapter_config.json"), "{}")
	_, _, err := ResolveArtifactDir(root, "job")
	if err == nil || !IsNoArtifact(err) {
		t.Fatalf("expected no-artifact error, got %v", err)
	}
	if _, _, err := ResolveArtifactDir("", "job"); !IsNoArtifact(err) {
		t.Fatalf("expected no-artifact error for empty model dir, got %v", err)
	}
	if _, _, err := ResolveArtifactDir(filepath.Join(root, "nope"), "job"); !IsNoArtifact(err) {
		t.Fatalf("expected no-artifact error for missing model dir, got %v", err)
	}
}

func TestLoadAdapterConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, adapterConfigFile), `{
		"base_model_name_or_path": "mistralai/Mistral-7B-v0.1",
		"peft_type": "LORA",
		"task_type": "CAUSAL_LM",
		"r": 16,
		"lora_alpha": 32,
		"target_modules": ["q_proj", "v_proj"]
	}`)
	ac, err := LoadAdapterConfig(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ac.BaseModel != "mistralai/Mistral-7B-v0.1" || ac.PeftType != "LORA" || ac.R != 16 || ac.LoraAlpha != 32 || len(ac.TargetModules) != 2 {
		t.Fatalf("unexpected config: %+v", ac)
	}
}

func TestLoadAdapterConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadAdapterConfig(dir); err == nil {
		t.Fatalf("expected error for missing file")
	}
	writeFile(t, filepath.Join(dir, adapterConfigFile), `{"peft_type":"LORA"}`)
	if _, err := LoadAdapterConfig(dir); err == nil {
		t.Fatalf("expected error for missing base model")
	}
	writeFile(t, filepath.Join(dir, adapterConfigFile), `{`)
	if _, err := LoadAdapterConfig(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadTokenizerConfig(t *testing.T) {
	dir := t.TempDir()
	tc, err := LoadTokenizerConfig(dir)
	if err != nil || tc.EOSToken != "" || tc.PadToken != "" {
		t.Fatalf("missing file: %+v err=%v", tc, err)
	}

	writeFile(t, filepath.Join(dir, tokenizerConfigFile), `{"eos_token":{"content":"</s>","lstrip":false},"pad_token":null}`)
	tc, err = LoadTokenizerConfig(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tc.EOSToken != "</s>" || tc.PadToken != "</s>" {
		t.Fatalf("pad should fall back to eos: %+v", tc)
	}

	writeFile(t, filepath.Join(dir, tokenizerConfigFile), `{"eos_token":"</s>","pad_token":"<unk>"}`)
	tc, err = LoadTokenizerConfig(dir)
	if err != nil || tc.EOSToken != "</s>" || tc.PadToken != "<unk>" {
		t.Fatalf("string tokens: %+v err=%v", tc, err)
	}

	writeFile(t, filepath.Join(dir, tokenizerConfigFile), `{"eos_token":5}`)
	if _, err := LoadTokenizerConfig(dir); err == nil {
		t.Fatalf("expected error for numeric token")
	}
}
