package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"askrelay/internal/config"
	"askrelay/internal/httpapi"
	"askrelay/internal/llm"
	"askrelay/internal/scorer"
)

func newScoreCmd(a *app) *cobra.Command {
	var (
		addr  string
		eager bool
	)
	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Serve POST /score backed by the fine-tuned adapter",
		Example: "  AZUREML_MODEL_DIR=/var/azureml-app/models askrelay score --eager",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Scorer
			if addr != "" {
				sc.Addr = addr
			}
			warnBackend(a.log, sc.Backend)
			s := scorer.New(scorerConfig(sc, a.log))
			defer s.Close()
			if eager {
				if err := s.Init(cmd.Context()); err != nil {
					return initError(err)
				}
			}
			httpapi.SetMaxBodyBytes(sc.MaxBodyBytes)
			return serve(cmd.Context(), a.log, "scorer", sc.Addr, httpapi.NewScoreMux(s))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default "+config.DefaultScorerAddr+", "+config.EnvPort+" overrides the port)")
	cmd.Flags().BoolVar(&eager, "eager", false, "Initialize the model before listening instead of on the first request")
	return cmd
}

// warnBackend flags a llama backend in a binary built without the llama tag.
func warnBackend(log zerolog.Logger, b config.BackendConfig) bool {
	if !strings.EqualFold(strings.TrimSpace(b.Kind), "llama") || llm.LlamaBuilt() {
		return false
	}
	log.Warn().Msg("backend.kind is llama but the binary was built without -tags=llama, scoring will fail with 503")
	return true
}

func initError(err error) error {
	if scorer.IsNoArtifact(err) {
		return fmt.Errorf("%w (set %s or scorer.model_dir)", err, config.EnvModelDir)
	}
	return err
}

func scorerConfig(sc config.ScorerConfig, log zerolog.Logger) scorer.Config {
	b := sc.Backend
	return scorer.Config{
		ModelDir:          sc.ModelDir,
		FixedSubdir:       sc.FixedSubdir,
		ExpectedBaseModel: sc.ExpectedBaseModel,
		HFToken:           sc.HFToken,
		Backend: llm.Options{
			Kind:           b.Kind,
			URL:            b.URL,
			APIKey:         b.APIKey,
			Model:          b.Model,
			Timeout:        time.Duration(b.TimeoutSeconds) * time.Second,
			ConnectTimeout: time.Duration(b.ConnectTimeoutSeconds) * time.Second,
			BaseModelPath:  b.BaseModelPath,
			ContextSize:    b.ContextSize,
			Threads:        b.Threads,
			GPULayers:      b.GPULayers,
		},
		Logger: log.With().Str("component", "scorer").Logger(),
	}
}
