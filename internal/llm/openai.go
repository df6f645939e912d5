package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// openAIBackend talks to an OpenAI-compatible completion server over HTTP.
// The fine-tuned adapter is selected by model name (e.g. vLLM --lora-modules name=path).
type openAIBackend struct {
	baseURL    string
	apiKey     string
	model      string
	reqTimeout time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// NewOpenAI constructs an OpenAI-compatible backend.
func NewOpenAI(opts Options) (Generator, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.URL), "/")
	if base == "" {
		return nil, errors.New("openai backend: url is required")
	}
	return &openAIBackend{
		baseURL:    base,
		apiKey:     opts.APIKey,
		model:      strings.TrimSpace(opts.Model),
		reqTimeout: opts.Timeout,
		httpClient: newHTTPClient(opts.ConnectTimeout),
		log:        opts.Logger,
	}, nil
}

// openAICompletionRequest represents the payload for /v1/completions.
type openAICompletionRequest struct {
	Model       string   `json:"model,omitempty"`
	Prompt      string   `json:"prompt"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature float32  `json:"temperature"`
	TopP        float32  `json:"top_p,omitempty"`
	TopK        int      `json:"top_k,omitempty"`
	N           int      `json:"n"`
	Stop        []string `json:"stop,omitempty"`
	Seed        int      `json:"seed,omitempty"`
	Stream      bool     `json:"stream"`
	// Not standard OpenAI; vLLM and llama.cpp server accept these, others ignore them.
	RepetitionPenalty float32 `json:"repetition_penalty,omitempty"`
	RepeatPenalty     float32 `json:"repeat_penalty,omitempty"`
}

// openAIStreamChoice covers both the completions (text) and chat (delta.content) shapes.
type openAIStreamChoice struct {
	Text  string `json:"text"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
	FinishReason string `json:"finish_reason"`
}

type openAIStreamResponse struct {
	Object  string               `json:"object"`
	Choices []openAIStreamChoice `json:"choices"`
}

func (b *openAIBackend) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	if b.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.reqTimeout)
		defer cancel()
	}
	temp := p.Temperature
	if !p.DoSample {
		temp = 0
	}
	payload := openAICompletionRequest{
		Model:             b.model,
		Prompt:            prompt,
		MaxTokens:         p.MaxNewTokens,
		Temperature:       temp,
		TopP:              p.TopP,
		TopK:              p.TopK,
		N:                 1,
		Stop:              p.Stop,
		Seed:              p.Seed,
		Stream:            true,
		RepetitionPenalty: p.RepetitionPenalty,
		RepeatPenalty:     p.RepetitionPenalty,
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", backendHTTPError{backend: "openai", status: resp.Status, body: string(msg)}
	}
	return b.readStream(ctx, resp.Body)
}

// readStream accumulates Server-Sent Events lines ("data: {...}") until [DONE] or EOF.
// Plain JSON lines without the data: prefix are accepted too.
func (b *openAIBackend) readStream(ctx context.Context, body io.Reader) (string, error) {
	r := bufio.NewReader(body)
	var out strings.Builder
	for {
		line, err := r.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			data := line
			if strings.HasPrefix(strings.ToLower(line), "data:") {
				data = strings.TrimSpace(line[len("data:"):])
			}
			if data == "[DONE]" {
				break
			}
			var msg openAIStreamResponse
			if jerr := json.Unmarshal([]byte(data), &msg); jerr == nil && len(msg.Choices) > 0 {
				out.WriteString(msg.Choices[0].Text)
				out.WriteString(msg.Choices[0].Delta.Content)
			} else {
				var generic map[string]any
				if jerr := json.Unmarshal([]byte(data), &generic); jerr == nil {
					if tok, ok := generic["content"].(string); ok {
						out.WriteString(tok)
					}
				} else {
					b.log.Debug().Str("backend", "openai").Str("line", line).Msg("unknown stream line")
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				return out.String(), ctx.Err()
			}
			return out.String(), err
		}
	}
	return out.String(), nil
}

func (b *openAIBackend) Close() error { return nil }
