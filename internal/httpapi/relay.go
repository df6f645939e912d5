package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"
)

// askHandler relays the request body upstream and copies back status, content type and body.
//
// @Summary      Relay a question to the scoring endpoint
// @Description  The body is forwarded unmodified; the upstream response is returned verbatim.
// @Tags         relay
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "Scoring request, e.g. {\"prompt\": \"What is LoRA?\"}"
// @Success      200   {array}   types.ScoreResult
// @Failure      500   {object}  types.ErrorResponse
// @Router       /api/ask [post]
func askHandler(fwd Forwarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lvl := requestLogLevel(r)
		if relayBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, relayBodyBytes)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			status := http.StatusBadRequest
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				status = http.StatusRequestEntityTooLarge
			}
			writeJSONError(w, status, "could not read request body")
			logEnd(r, lvl, "ask end", status, start, err)
			return
		}
		resp, err := fwd.Forward(r.Context(), body)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "Server error")
			logEnd(r, lvl, "ask end", http.StatusInternalServerError, start, err)
			return
		}
		w.Header().Set("Content-Type", resp.ContentType)
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(resp.Body)
		logEnd(r, lvl, "ask end", resp.StatusCode, start, nil)
	}
}
