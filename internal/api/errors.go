package api

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest      = "bad_request"
	codeInvalidPersona  = "invalid_persona"
	codeNotConfigured   = "not_configured"
	codeTooLarge        = "too_large"
	codeGenerationError = "generation_failed"
	codeInternal        = "internal_error"
)

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
