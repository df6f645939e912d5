package httpapi

import (
	"encoding/json"
	"net/http"

	"askrelay/internal/llm"
	"askrelay/internal/scorer"
	"askrelay/pkg/types"
)

// statusFor maps scorer initialization errors onto HTTP status codes.
func statusFor(err error) int {
	if llm.IsDependencyUnavailable(err) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// errorMessage is the client-facing text for err. A missing artifact is a deployment
// problem; the model path stays in the server log.
func errorMessage(err error) string {
	if scorer.IsNoArtifact(err) {
		return "model artifact not found"
	}
	return err.Error()
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
