package httpapi

import (
	"encoding/json"
	"net/http"

	"summaryd/internal/summarizer"
	"summaryd/pkg/types"
)

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorStatus maps service errors to an HTTP status and a client-safe message.
// Inference failures never leak internal detail.
func errorStatus(err error) (int, string, string) {
	switch {
	case summarizer.IsValidation(err):
		return http.StatusBadRequest, err.Error(), "validation"
	case summarizer.IsLoadError(err):
		return http.StatusServiceUnavailable, summarizer.MsgModelNotReady, "load"
	default:
		return http.StatusInternalServerError, summarizer.MsgInternal, "inference"
	}
}
