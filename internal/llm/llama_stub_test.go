//go:build !llama

package llm

import "testing"

func TestNewLlama_StubReportsMissingDependency(t *testing.T) {
	_, err := New(Options{Kind: "llama", BaseModelPath: "/models/base.gguf"})
	if err == nil || !IsDependencyUnavailable(err) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	if LlamaBuilt() {
		t.Fatalf("LlamaBuilt() = true without the llama tag")
	}
}
