//go:build llama

package llm

import (
	"context"
	"errors"
	"strings"
	"sync"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// llamaBackend owns a loaded GGUF base model with the LoRA adapter applied.
type llamaBackend struct {
	mu      sync.Mutex // a llama.cpp context serves one prediction at a time
	model   *llama.LLama
	threads int
}

// NewLlama loads the base model and attaches the adapter in-process.
func NewLlama(opts Options) (Generator, error) {
	if strings.TrimSpace(opts.BaseModelPath) == "" {
		return nil, errors.New("llama backend: base model path is empty")
	}
	mo := []llama.ModelOption{
		llama.SetContext(opts.ContextSize),
	}
	if opts.GPULayers > 0 {
		mo = append(mo, llama.SetGPULayers(opts.GPULayers))
	}
	if opts.AdapterPath != "" {
		mo = append(mo, llama.SetLoraAdapter(opts.AdapterPath))
	}
	m, err := llama.New(opts.BaseModelPath, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaBackend{model: m, threads: opts.Threads}, nil
}

func (b *llamaBackend) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.model == nil {
		return "", errors.New("llama model not initialized")
	}
	// Stop generation once the caller goes away.
	b.model.SetTokenCallback(func(string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	})
	text, err := b.model.Predict(prompt, predictOptions(p, b.threads)...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	return text, nil
}

func (b *llamaBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.model != nil {
		b.model.Free()
		b.model = nil
	}
	return nil
}

func zn(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func zf(v, def float32) float32 {
	if v > 0 {
		return v
	}
	return def
}

// predictOptions converts Params into go-llama.cpp options.
func predictOptions(p Params, threads int) []llama.PredictOption {
	temp := zf(p.Temperature, llama.DefaultOptions.Temperature)
	if !p.DoSample {
		temp = 0
	}
	po := []llama.PredictOption{
		llama.SetTokens(max(1, p.MaxNewTokens)),
		llama.SetThreads(max(1, threads)),
		llama.SetTopP(zf(p.TopP, llama.DefaultOptions.TopP)),
		llama.SetTopK(zn(p.TopK, llama.DefaultOptions.TopK)),
		llama.SetTemperature(temp),
		llama.SetPenalty(zf(p.RepetitionPenalty, llama.DefaultOptions.Penalty)),
	}
	if p.Seed != 0 {
		po = append(po, llama.SetSeed(p.Seed))
	}
	if len(p.Stop) > 0 {
		po = append(po, llama.SetStopWords(p.Stop...))
	}
	return po
}
