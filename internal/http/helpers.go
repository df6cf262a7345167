package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error      string         `json:"error"`
	Message    string         `json:"message,omitempty"`
	Issues     []domain.Issue `json:"issues,omitempty"`
	Missing    []uuid.UUID    `json:"missing,omitempty"`
	Extra      []uuid.UUID    `json:"extra,omitempty"`
	Duplicates []uuid.UUID    `json:"duplicates,omitempty"`
}

type orderPayload struct {
	Order []uuid.UUID `json:"order"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

// decodeJSON reads one JSON value into target. Unknown fields are rejected.
func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

// readBody decodes the request body and writes a 400 on malformed input. An
// empty body is accepted when optional is true.
func readBody(w http.ResponseWriter, r *http.Request, target any, optional bool) bool {
	err := decodeJSON(r, target)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	if errors.Is(err, io.EOF) {
		err = errors.New("request body is required")
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  invalid.Issues,
		}
	}

	var mismatch *domain.ReorderMismatchError
	if errors.As(err, &mismatch) {
		return http.StatusConflict, errorResponse{
			Error:      "reorder_mismatch",
			Message:    err.Error(),
			Missing:    mismatch.Missing,
			Extra:      mismatch.Extra,
			Duplicates: mismatch.Duplicates,
		}
	}

	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, domain.ErrConflict) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, domain.ErrPersistence) {
		return http.StatusServiceUnavailable, errorResponse{
			Error:   "persistence_unavailable",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}

// pathUUID parses the named path value and writes a 400 when it is invalid.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := parseUUID(r.PathValue(name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: fmt.Sprintf("invalid %s", name)})
		return uuid.Nil, false
	}
	return id, true
}

func unavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
}
