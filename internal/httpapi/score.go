package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// scoreHandler decodes a prompt request and returns one result per prompt.
//
// @Summary      Answer one or more prompts
// @Description  prompt is a string or a list of strings; any other field is copied into every result,
// @Description  lists of the same length as prompt are spread positionally.
// @Tags         scorer
// @Accept       json
// @Produce      json
// @Param        body  body      types.ScoreRequest  true  "Prompt request"
// @Success      200   {array}   types.ScoreResult
// @Failure      400   {object}  types.ErrorResponse
// @Failure      415   {object}  types.ErrorResponse
// @Failure      500   {object}  types.ErrorResponse
// @Failure      503   {object}  types.ErrorResponse
// @Router       /score [post]
func scoreHandler(svc ScoreService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, scoreBodyBytes)
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			// Oversized bodies also map to 400.
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var req map[string]any
		if err := dec.Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		start := time.Now()
		lvl := requestLogLevel(r)
		if lvl >= LevelDebug {
			zlog.Info().Str("request_id", reqID(r)).RawJSON("body", raw).Msg("score start")
		}
		ctx, cancel := joinContexts(r.Context(), serverBaseCtx)
		defer cancel()
		results, err := svc.Run(ctx, req)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := statusFor(err)
			writeJSONError(w, status, errorMessage(err))
			logEnd(r, lvl, "score end", status, start, err)
			return
		}
		writeJSON(w, http.StatusOK, results)
		logEnd(r, lvl, "score end", http.StatusOK, start, nil)
	}
}
