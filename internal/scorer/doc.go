// Package scorer turns prompts into cleaned answers using a fine-tuned adapter.
// It is structured into small files by concern:
//
//   - model.go: Scorer type, lazy one-time initialization, Ready/Close.
//   - artifact.go: artifact directory resolution, adapter and tokenizer configs.
//   - budget.go: keyword-based token budget selection.
//   - prompt.go: prompt formatting and answer extraction from raw generations.
//   - clean.go: repetition collapsing, sentence filtering and answer validation.
//   - score.go: request handling (prompt lists, passthrough fields, per-prompt errors).
//   - metrics.go: Prometheus counters for generations and refusals.
//   - errors.go: error types and helpers.
//
// Generation itself is delegated to an llm.Generator; everything in this package after the
// generator call is deterministic string processing.
package scorer
