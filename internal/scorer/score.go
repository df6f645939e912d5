package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"askrelay/internal/llm"
)

// Request-level error messages, returned in-band as a single-element result list.
const (
	msgNoPrompt       = "No prompt provided."
	msgPromptType     = "Prompt must be a string or a list of strings."
	msgPromptItemType = "prompt must be a string"
	promptField       = "prompt"
	answerField       = "answer"
	fullResponseField = "full_response"
	errorField        = "error"
)

// Result is one element of the response list. It is a map so passthrough fields can be
// merged alongside prompt, answer and full_response.
type Result map[string]any

// Answer is the outcome of one successful generation.
type Answer struct {
	Prompt       string
	Answer       string
	FullResponse string
	Budget       Budget
	Refusal      RefusalReason
}

// RunJSON decodes a raw request body and runs it. Numbers are kept as json.Number so
// passthrough fields round-trip unchanged.
func (s *Scorer) RunJSON(ctx context.Context, body []byte) ([]Result, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var req map[string]any
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return s.Run(ctx, req)
}

// Run answers every prompt in req. Initialization failures are returned as errors; request
// shape problems and per-prompt generation failures are reported in the result list.
func (s *Scorer) Run(ctx context.Context, req map[string]any) ([]Result, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	raw, ok := req[promptField]
	if !ok || raw == nil {
		return []Result{{errorField: msgNoPrompt}}, nil
	}
	var prompts []any
	switch p := raw.(type) {
	case string:
		prompts = []any{p}
	case []any:
		prompts = p
	default:
		return []Result{{errorField: msgPromptType}}, nil
	}
	extra := make(map[string]any, len(req))
	for k, v := range req {
		if k != promptField {
			extra[k] = v
		}
	}

	results := make([]Result, 0, len(prompts))
	for idx, item := range prompts {
		prompt, ok := item.(string)
		if !ok {
			results = append(results, Result{promptField: item, errorField: msgPromptItemType})
			continue
		}
		ans, err := s.Answer(ctx, prompt)
		if err != nil {
			s.log.Warn().Err(err).Int("index", idx).Msg("generation failed")
			results = append(results, Result{promptField: prompt, errorField: err.Error()})
			continue
		}
		r := Result{
			promptField:       ans.Prompt,
			answerField:       ans.Answer,
			fullResponseField: ans.FullResponse,
		}
		for k, v := range extra {
			if list, ok := v.([]any); ok && len(list) == len(prompts) {
				r[k] = list[idx]
			} else {
				r[k] = v
			}
		}
		results = append(results, r)
	}
	return results, nil
}

// Answer generates and post-processes a single prompt. Init must have succeeded.
func (s *Scorer) Answer(ctx context.Context, prompt string) (Answer, error) {
	gen, params := s.pipeline()
	if gen == nil {
		return Answer{}, errNoPipeline
	}
	formatted := FormatPrompt(prompt)
	budget := SelectBudget(prompt)
	params.MaxNewTokens = budget.MaxTokens

	start := time.Now()
	out, err := gen.Generate(ctx, formatted, params)
	generationDuration.WithLabelValues(string(budget.Bucket)).Observe(time.Since(start).Seconds())
	if err != nil {
		generationsTotal.WithLabelValues(string(budget.Bucket), "error").Inc()
		return Answer{}, err
	}
	generationsTotal.WithLabelValues(string(budget.Bucket), "ok").Inc()

	full := formatted + out
	answer, reason := Postprocess(full, formatted)
	if reason != ReasonNone {
		refusalsTotal.WithLabelValues(string(reason)).Inc()
	}
	s.log.Debug().
		Str("bucket", string(budget.Bucket)).
		Int("max_tokens", budget.MaxTokens).
		Str("refusal", string(reason)).
		Dur("dur", time.Since(start)).
		Msg("prompt answered")
	return Answer{
		Prompt:       prompt,
		Answer:       answer,
		FullResponse: full,
		Budget:       budget,
		Refusal:      reason,
	}, nil
}

func (s *Scorer) pipeline() (llm.Generator, llm.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.params
	p.Stop = append([]string(nil), s.params.Stop...)
	return s.gen, p
}
