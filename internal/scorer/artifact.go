package scorer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"askrelay/internal/common/fsutil"
)

const (
	adapterConfigFile   = "adapter_config.json"
	tokenizerConfigFile = "tokenizer_config.json"
)

// ResolveArtifactDir returns modelDir/fixedSubdir when it exists, otherwise the first
// subdirectory of modelDir in lexical order.
func ResolveArtifactDir(modelDir, fixedSubdir string) (dir string, fallback bool, err error) {
	if strings.TrimSpace(modelDir) == "" {
		return "", false, noArtifactError{msg: "model directory is not set"}
	}
	base, err := fsutil.ExpandHome(modelDir)
	if err != nil {
		return "", false, err
	}
	if fixedSubdir != "" {
		p := filepath.Join(base, fixedSubdir)
		if fsutil.IsDir(p) {
			return p, false, nil
		}
	}
	subdirs, err := fsutil.SubDirs(base)
	if err != nil {
		return "", false, noArtifactError{msg: "model directory unreadable: " + err.Error()}
	}
	if len(subdirs) == 0 {
		return "", false, noArtifactError{msg: "no subdirectory found in model directory " + base}
	}
	return filepath.Join(base, subdirs[0]), true, nil
}

// AdapterConfig is the subset of a PEFT adapter_config.json we use.
type AdapterConfig struct {
	BaseModel     string   `json:"base_model_name_or_path"`
	PeftType      string   `json:"peft_type"`
	TaskType      string   `json:"task_type"`
	R             int      `json:"r"`
	LoraAlpha     float64  `json:"lora_alpha"`
	TargetModules []string `json:"target_modules"`
}

// LoadAdapterConfig reads adapter_config.json from dir. The base model id is required.
func LoadAdapterConfig(dir string) (AdapterConfig, error) {
	var ac AdapterConfig
	b, err := os.ReadFile(filepath.Join(dir, adapterConfigFile))
	if err != nil {
		return ac, fmt.Errorf("adapter config: %w", err)
	}
	if err := json.Unmarshal(b, &ac); err != nil {
		return ac, fmt.Errorf("adapter config: %w", err)
	}
	if strings.TrimSpace(ac.BaseModel) == "" {
		return ac, errors.New("adapter config: base_model_name_or_path is empty")
	}
	return ac, nil
}

// TokenizerConfig holds the special tokens the generation call needs.
type TokenizerConfig struct {
	EOSToken string
	PadToken string
}

// specialToken accepts both "</s>" and {"content": "</s>", ...}.
type specialToken string

func (t *specialToken) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = specialToken(s)
		return nil
	}
	var obj struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*t = specialToken(obj.Content)
	return nil
}

// LoadTokenizerConfig reads tokenizer_config.json from dir. A missing file yields an empty
// config. The pad token falls back to the eos token.
func LoadTokenizerConfig(dir string) (TokenizerConfig, error) {
	var tc TokenizerConfig
	p := filepath.Join(dir, tokenizerConfigFile)
	if !fsutil.PathExists(p) {
		return tc, nil
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return tc, fmt.Errorf("tokenizer config: %w", err)
	}
	var raw struct {
		EOS *specialToken `json:"eos_token"`
		Pad *specialToken `json:"pad_token"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return tc, fmt.Errorf("tokenizer config: %w", err)
	}
	if raw.EOS != nil {
		tc.EOSToken = string(*raw.EOS)
	}
	if raw.Pad != nil {
		tc.PadToken = string(*raw.Pad)
	}
	if tc.PadToken == "" {
		tc.PadToken = tc.EOSToken
	}
	return tc, nil
}
