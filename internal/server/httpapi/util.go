package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	errUnauthorized   = errors.New("unauthorized")
	errInvalidRequest = errors.New("invalid request")
	errInternal       = errors.New("internal error")
	errNotFound       = errors.New("not found")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
