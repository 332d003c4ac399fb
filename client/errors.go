package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a structured error response from the backend. The backend
// reports failures as either a single "detail" string, a "non_field_errors"
// list, or a map of field name to message list.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("gatehouse/client: backend returned %d: %s", e.Status, e.Message)
}

// UserMessage returns the human-readable message suitable for display.
func (e *APIError) UserMessage() string { return e.Message }

// decodeError extracts a structured message from an error response body.
// Resolution order: "detail", then "non_field_errors", then per-field
// messages, then the generic status text.
func decodeError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return apiErr
	}

	if detail, ok := payload["detail"].(string); ok && detail != "" {
		apiErr.Message = detail
		return apiErr
	}

	if msgs := stringList(payload["non_field_errors"]); len(msgs) > 0 {
		apiErr.Message = strings.Join(msgs, " ")
		return apiErr
	}

	fields := make(map[string][]string)
	for name, raw := range payload {
		if msgs := stringList(raw); len(msgs) > 0 {
			fields[name] = msgs
		}
	}
	if len(fields) == 0 {
		return apiErr
	}
	apiErr.Fields = fields

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(fields[name], " ")))
	}
	apiErr.Message = strings.Join(parts, "; ")
	return apiErr
}

// stringList coerces a decoded JSON value into a list of strings. The
// backend emits both bare strings and string lists for field errors.
func stringList(v any) []string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
