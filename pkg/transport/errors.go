package transport

import (
	"encoding/json"
	"net/http"

	"github.com/schliff-dev/schliff/pkg/api"
)

// HTTPStatusFromError maps an error kind to the corresponding HTTP status
// code. Transport-level errors (body too large, unsupported content type,
// method not allowed) are handled separately by the HTTP adapter.
func HTTPStatusFromError(err *api.TranslationError) int {
	switch err.Kind {
	case api.ErrorKindSecretKey:
		return http.StatusUnauthorized
	case api.ErrorKindParam:
		return http.StatusBadRequest
	case api.ErrorKindUnsupportedLanguage:
		return http.StatusUnprocessableEntity
	case api.ErrorKindAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteErrorResponse writes a JSON error response using the ErrorResponse
// envelope from pkg/api.
func WriteErrorResponse(w http.ResponseWriter, terr *api.TranslationError, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: terr})
}

// WriteTranslationError writes an error response, deriving the HTTP status
// code from the error kind.
func WriteTranslationError(w http.ResponseWriter, terr *api.TranslationError) {
	WriteErrorResponse(w, terr, HTTPStatusFromError(terr))
}
