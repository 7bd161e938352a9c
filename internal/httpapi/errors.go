package httpapi

import (
	"encoding/json"
	"net/http"

	"inferd/internal/manager"
	"inferd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// writeServiceError maps a façade error onto its HTTP status: 404 for
// missing models, 400 for malformed requests, 503 for workers outside
// running, 500 otherwise.
func writeServiceError(w http.ResponseWriter, err error) {
	if he, ok := err.(HTTPError); ok {
		writeJSONError(w, he.StatusCode(), he.Error())
		return
	}
	switch {
	case manager.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case manager.IsInvalidArgument(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case manager.IsUnavailable(err):
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
