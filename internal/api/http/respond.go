package http

import (
	"encoding/json"
	"net/http"

	"lendly/internal/apperrors"
	"lendly/internal/logger"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encoding failed", "error", err)
	}
}

// writeError maps typed application errors to their HTTP status; anything
// untyped is a 500 with the detail kept out of the response body.
func writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.From(err)
	if appErr.Code == apperrors.CodeInternal {
		logger.Error("internal error", "error", err)
	}
	writeJSON(w, appErr.HTTPStatus(), errorBody{
		Error:   appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, apperrors.NewFormat("malformed request body", err))
		return false
	}
	return true
}
