package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/iota-uz/refconsole/pkg/composables"
)

const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeUpstreamFailed   = "UPSTREAM_FAILED"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// ErrorEnvelope standardizes JSON error responses for API namespaces.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// RequestID returns the id the logging middleware assigned, falling back to
// the X-Request-ID header and finally a fresh uuid echoed on the response.
func RequestID(w http.ResponseWriter, r *http.Request) string {
	if r == nil {
		return ""
	}
	if logger, err := composables.TryUseLogger(r.Context()); err == nil {
		if id, ok := logger.Data["request-id"].(string); ok && id != "" {
			return id
		}
	}
	if id := strings.TrimSpace(r.Header.Get("X-Request-ID")); id != "" {
		return id
	}
	id := uuid.NewString()
	w.Header().Set("X-Request-ID", id)
	return id
}

func WriteAPIError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	_ = WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    map[string]string{"request_id": RequestID(w, r)},
	})
}

// WriteValidationError answers 422 with per-field messages.
func WriteValidationError(w http.ResponseWriter, r *http.Request, message string, fields map[string]string) {
	_ = WriteJSON(w, http.StatusUnprocessableEntity, &ErrorEnvelope{
		Code:    CodeValidationFailed,
		Message: message,
		Meta:    map[string]string{"request_id": RequestID(w, r)},
		Fields:  fields,
	})
}

// DecodeJSON reads a JSON request body into v. An empty body is an error.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "decode request body")
	}
	return nil
}

// NotFound and MethodNotAllowed answer with the JSON envelope.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteAPIError(w, r, http.StatusNotFound, CodeNotFound, "not found")
	})
}

func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteAPIError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})
}

// WriteInvalidRequest answers 400 with per-field messages.
func WriteInvalidRequest(w http.ResponseWriter, r *http.Request, message string, fields map[string]string) {
	_ = WriteJSON(w, http.StatusBadRequest, &ErrorEnvelope{
		Code:    CodeInvalidRequest,
		Message: message,
		Meta:    map[string]string{"request_id": RequestID(w, r)},
		Fields:  fields,
	})
}
