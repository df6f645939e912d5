// Package llm provides the text-generation backends used by the scorer.
//
// A backend plays the role of a generation pipeline: it takes a fully formatted prompt and
// returns the generated continuation (without the prompt). Backends:
//
//   - openai: an OpenAI-compatible /v1/completions server (vLLM, llama.cpp server) with the
//     fine-tuned adapter registered under a model name.
//   - tgi: a Hugging Face text-generation-inference server (/generate).
//   - llama: in-process llama.cpp via go-llama.cpp with a GGUF base model and LoRA adapter.
//     Enabled with `-tags=llama`; without the tag the backend reports a missing dependency.
package llm

//go:generate mockgen -destination=mocks/mock_generator.go -package=mocks askrelay/internal/llm Generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Generator produces a continuation for a formatted prompt.
type Generator interface {
	// Generate returns only the newly generated text. Implementations must return when the
	// context is canceled.
	Generate(ctx context.Context, prompt string, params Params) (string, error)
	// Close releases backend resources.
	Close() error
}

// Params captures sampling parameters passed to a backend.
type Params struct {
	MaxNewTokens      int
	DoSample          bool
	TopK              int
	TopP              float32
	Temperature       float32
	RepetitionPenalty float32
	Stop              []string
	Seed              int
}

// Options configures backend construction.
type Options struct {
	// Kind selects the backend: "openai", "tgi" or "llama".
	Kind   string
	URL    string
	APIKey string
	// Model is the name the serving runtime knows the adapter by (openai).
	Model          string
	Timeout        time.Duration
	ConnectTimeout time.Duration
	// llama only
	BaseModelPath string
	AdapterPath   string
	ContextSize   int
	Threads       int
	GPULayers     int

	Logger zerolog.Logger
}

// New builds the backend selected by opts.Kind.
func New(opts Options) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "openai", "":
		return NewOpenAI(opts)
	case "tgi":
		return NewTGI(opts)
	case "llama":
		return NewLlama(opts)
	default:
		return nil, fmt.Errorf("unknown backend kind %q", opts.Kind)
	}
}
