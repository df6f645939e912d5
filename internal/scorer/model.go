package scorer

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"askrelay/internal/llm"
	"askrelay/internal/registry"
	"askrelay/pkg/types"
)

// Fixed sampling parameters. They are not configurable per request.
const (
	sampleTopK              = 20
	sampleTopP              = 0.7
	sampleTemperature       = 0.3
	sampleRepetitionPenalty = 1.2
)

// Config tunes Scorer construction.
type Config struct {
	ModelDir          string
	FixedSubdir       string
	ExpectedBaseModel string
	// HFToken authenticates the tgi backend when it has no API key of its own.
	HFToken string
	Backend llm.Options
	// NewGenerator builds the backend; defaults to llm.New.
	NewGenerator func(llm.Options) (llm.Generator, error)
	Logger       zerolog.Logger
}

// Artifact describes the resolved fine-tuned model on disk.
type Artifact struct {
	Dir       string
	Fallback  bool
	BaseModel string
	Adapter   AdapterConfig
	Tokenizer TokenizerConfig
	Files     []types.ArtifactFile
}

// Scorer holds the process-wide generation pipeline. It is initialized lazily and never
// reloaded once initialization succeeded.
type Scorer struct {
	cfg Config
	log zerolog.Logger

	// initMu serializes initialization attempts; mu guards gen, artifact and params.
	initMu   sync.Mutex
	mu       sync.Mutex
	gen      llm.Generator
	artifact Artifact
	params   llm.Params
}

// New constructs an uninitialized Scorer.
func New(cfg Config) *Scorer {
	if cfg.NewGenerator == nil {
		cfg.NewGenerator = llm.New
	}
	return &Scorer{cfg: cfg, log: cfg.Logger}
}

// Ready reports whether initialization has succeeded.
func (s *Scorer) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen != nil
}

// Artifact returns the resolved artifact; zero until Ready.
func (s *Scorer) Artifact() Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact
}

// Init locates the artifact, reads the adapter and tokenizer configs and builds the
// generator. It runs at most once successfully; a failed attempt is retried on the next call.
func (s *Scorer) Init(ctx context.Context) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	if s.Ready() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	art, err := s.resolveArtifact()
	if err != nil {
		initTotal.WithLabelValues("error").Inc()
		return err
	}
	opts := s.backendOptions(art)
	gen, err := s.cfg.NewGenerator(opts)
	if err != nil {
		initTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to create text-generation pipeline: %w", err)
	}
	if gen == nil {
		initTotal.WithLabelValues("error").Inc()
		return errNoPipeline
	}
	params := llm.Params{
		DoSample:          true,
		TopK:              sampleTopK,
		TopP:              sampleTopP,
		Temperature:       sampleTemperature,
		RepetitionPenalty: sampleRepetitionPenalty,
	}
	if art.Tokenizer.EOSToken != "" {
		params.Stop = []string{art.Tokenizer.EOSToken}
	}
	s.mu.Lock()
	s.gen = gen
	s.artifact = art
	s.params = params
	s.mu.Unlock()
	initTotal.WithLabelValues("ok").Inc()
	s.log.Info().
		Str("backend", opts.Kind).
		Str("artifact", art.Dir).
		Str("base_model", art.BaseModel).
		Dur("dur", time.Since(start)).
		Msg("scorer initialized")
	return nil
}

func (s *Scorer) resolveArtifact() (Artifact, error) {
	dir, fallback, err := ResolveArtifactDir(s.cfg.ModelDir, s.cfg.FixedSubdir)
	if err != nil {
		return Artifact{}, err
	}
	if fallback {
		s.log.Warn().Str("dir", dir).Str("expected", s.cfg.FixedSubdir).Msg("fixed artifact subdirectory missing, using first subdirectory")
	} else {
		s.log.Debug().Str("dir", dir).Msg("using fixed artifact subdirectory")
	}
	files, err := registry.Scan(dir)
	if err != nil {
		return Artifact{}, err
	}
	s.log.Debug().Strs("files", registry.Names(files)).Msg("artifact contents")

	ac, err := LoadAdapterConfig(dir)
	if err != nil {
		return Artifact{}, err
	}
	if s.cfg.ExpectedBaseModel != "" && ac.BaseModel != s.cfg.ExpectedBaseModel {
		s.log.Warn().Str("base_model", ac.BaseModel).Str("expected", s.cfg.ExpectedBaseModel).Msg("adapter was trained on a different base model")
	}
	tc, err := LoadTokenizerConfig(dir)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Dir:       dir,
		Fallback:  fallback,
		BaseModel: ac.BaseModel,
		Adapter:   ac,
		Tokenizer: tc,
		Files:     files,
	}, nil
}

// backendOptions fills backend fields that derive from the artifact.
func (s *Scorer) backendOptions(art Artifact) llm.Options {
	opts := s.cfg.Backend
	opts.Logger = s.log
	if opts.Model == "" {
		opts.Model = filepath.Base(art.Dir)
	}
	if opts.Kind == "tgi" && opts.APIKey == "" {
		opts.APIKey = s.cfg.HFToken
	}
	if opts.Kind == "llama" {
		if opts.AdapterPath == "" {
			if f, ok := registry.FirstOfKind(art.Files, types.KindGGUF); ok {
				opts.AdapterPath = f.Path
			} else if f, ok := registry.FirstOfKind(art.Files, types.KindAdapterWeights); ok {
				opts.AdapterPath = f.Path
			}
		}
		if opts.BaseModelPath == "" {
			// A GGUF export of the base model may sit next to the artifact directories.
			if files, err := registry.Scan(filepath.Dir(art.Dir)); err == nil {
				if f, ok := registry.FirstOfKind(files, types.KindGGUF); ok {
					opts.BaseModelPath = f.Path
				}
			}
		}
	}
	return opts
}

// Close releases the generator. It waits for an initialization in progress.
func (s *Scorer) Close() error {
	s.initMu.Lock()
	defer s.initMu.Unlock()
	s.mu.Lock()
	gen := s.gen
	s.gen = nil
	s.mu.Unlock()
	if gen == nil {
		return nil
	}
	return gen.Close()
}
