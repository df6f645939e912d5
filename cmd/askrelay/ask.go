package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"askrelay/internal/scorer"
)

func newAskCmd(a *app) *cobra.Command {
	var request string
	cmd := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Answer prompts once and print the JSON results",
		Example: "  askrelay ask \"What is LoRA?\"\n" +
			"  echo '{\"prompt\":[\"What is LoRA?\"],\"id\":[1]}' | askrelay ask --request -",
		RunE: func(cmd *cobra.Command, args []string) error {
			if request == "" && len(args) == 0 {
				return fmt.Errorf("ask requires prompts or --request")
			}
			warnBackend(a.log, a.cfg.Scorer.Backend)
			s := scorer.New(scorerConfig(a.cfg.Scorer, a.log))
			defer s.Close()

			var (
				results []scorer.Result
				err     error
			)
			if request != "" {
				var body []byte
				if body, err = readRequest(cmd.InOrStdin(), request); err != nil {
					return err
				}
				results, err = s.RunJSON(cmd.Context(), body)
			} else {
				prompts := make([]any, len(args))
				for i, p := range args {
					prompts[i] = p
				}
				results, err = s.Run(cmd.Context(), map[string]any{"prompt": prompts})
			}
			if err != nil {
				return initError(err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
	cmd.Flags().StringVar(&request, "request", "", "Read a full JSON request from this file ('-' for stdin)")
	return cmd
}

func readRequest(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
