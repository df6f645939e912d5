package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// tgiBackend calls a Hugging Face text-generation-inference server (or an Inference Endpoint)
// using its /generate route. The API key is usually a Hugging Face Hub token.
type tgiBackend struct {
	baseURL    string
	token      string
	reqTimeout time.Duration
	httpClient *http.Client
}

// NewTGI constructs a text-generation-inference backend.
func NewTGI(opts Options) (Generator, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.URL), "/")
	if base == "" {
		return nil, errors.New("tgi backend: url is required")
	}
	return &tgiBackend{
		baseURL:    base,
		token:      opts.APIKey,
		reqTimeout: opts.Timeout,
		httpClient: newHTTPClient(opts.ConnectTimeout),
	}, nil
}

type tgiParameters struct {
	MaxNewTokens      int      `json:"max_new_tokens,omitempty"`
	DoSample          bool     `json:"do_sample"`
	TopK              int      `json:"top_k,omitempty"`
	TopP              float32  `json:"top_p,omitempty"`
	Temperature       float32  `json:"temperature,omitempty"`
	RepetitionPenalty float32  `json:"repetition_penalty,omitempty"`
	Stop              []string `json:"stop,omitempty"`
	Seed              int      `json:"seed,omitempty"`
	ReturnFullText    bool     `json:"return_full_text"`
}

type tgiRequest struct {
	Inputs     string        `json:"inputs"`
	Parameters tgiParameters `json:"parameters"`
}

type tgiResponse struct {
	GeneratedText string `json:"generated_text"`
}

func (b *tgiBackend) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	if b.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.reqTimeout)
		defer cancel()
	}
	body, _ := json.Marshal(tgiRequest{
		Inputs: prompt,
		Parameters: tgiParameters{
			MaxNewTokens:      p.MaxNewTokens,
			DoSample:          p.DoSample,
			TopK:              p.TopK,
			TopP:              p.TopP,
			Temperature:       p.Temperature,
			RepetitionPenalty: p.RepetitionPenalty,
			Stop:              p.Stop,
			Seed:              p.Seed,
		},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(raw) > 4096 {
			raw = raw[:4096]
		}
		return "", backendHTTPError{backend: "tgi", status: resp.Status, body: string(raw)}
	}
	return decodeTGI(raw)
}

// decodeTGI accepts both the TGI object shape and the Inference API list shape.
func decodeTGI(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []tgiResponse
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return "", fmt.Errorf("tgi decode: %w", err)
		}
		if len(list) == 0 {
			return "", errors.New("tgi decode: empty result list")
		}
		return list[0].GeneratedText, nil
	}
	var one tgiResponse
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return "", fmt.Errorf("tgi decode: %w", err)
	}
	return one.GeneratedText, nil
}

func (b *tgiBackend) Close() error { return nil }
