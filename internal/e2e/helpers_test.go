package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"askrelay/internal/httpapi"
	"askrelay/internal/llm"
	"askrelay/internal/relay"
	"askrelay/internal/scorer"
)

const fixedSubdir = "mistral-finetune-job-20250625100239"

// createModelDir lays out an artifact directory the way the scoring host mounts it.
func createModelDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, fixedSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	files := map[string]string{
		"adapter_config.json":       `{"base_model_name_or_path":"mistralai/Mistral-7B-v0.1","peft_type":"LORA","r":16}`,
		"tokenizer_config.json":     `{"eos_token":{"content":"</s>"}}`,
		"adapter_model.safetensors": "",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

// completionBackend is an OpenAI-compatible completion server that answers from a table
// keyed by the formatted prompt.
type completionBackend struct {
	mu      sync.Mutex
	answers map[string]string
	prompts []string
}

func (b *completionBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.prompts = append(b.prompts, req.Prompt)
	answer, ok := b.answers[req.Prompt]
	b.mu.Unlock()
	if !ok {
		http.Error(w, `{"error":"model overloaded"}`, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	chunk, _ := json.Marshal(map[string]any{"choices": []map[string]any{{"text": answer}}})
	_, _ = w.Write([]byte("data: " + string(chunk) + "\n\ndata: [DONE]\n\n"))
}

func (b *completionBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.prompts)
}

type stack struct {
	backend *completionBackend
	scorer  *scorer.Scorer
	score   *httptest.Server
	relay   *httptest.Server
}

// newStack wires relay -> scorer -> completion backend, all in process.
func newStack(t *testing.T, answers map[string]string) *stack {
	t.Helper()
	be := &completionBackend{answers: answers}
	beSrv := httptest.NewServer(be)
	t.Cleanup(beSrv.Close)

	s := scorer.New(scorer.Config{
		ModelDir:    createModelDir(t),
		FixedSubdir: fixedSubdir,
		Backend:     llm.Options{Kind: "openai", URL: beSrv.URL},
		Logger:      zerolog.Nop(),
	})
	t.Cleanup(func() { _ = s.Close() })
	scoreSrv := httptest.NewServer(httpapi.NewScoreMux(s))
	t.Cleanup(scoreSrv.Close)

	fwd, err := relay.New(relay.Options{UpstreamURL: scoreSrv.URL + "/score", Key: "test-key", Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("relay: %v", err)
	}
	relaySrv := httptest.NewServer(httpapi.NewRelayMux(fwd, httpapi.DefaultCORS()))
	t.Cleanup(relaySrv.Close)
	return &stack{backend: be, scorer: s, score: scoreSrv, relay: relaySrv}
}

func postJSON(t *testing.T, url string, payload string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(payload)))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}
