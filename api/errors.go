package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnauthorized = errors.New("api: unauthorized")
	ErrForbidden    = errors.New("api: forbidden")
	ErrNotFound     = errors.New("api: not found")

	// ErrTransport is returned when the backend could not be reached.
	ErrTransport = errors.New("api: transport error")

	// ErrInvalidResponse is returned when a 2xx body cannot be decoded.
	ErrInvalidResponse = errors.New("api: invalid response")
)

// Error is a non-2xx backend response. Message is what the user should see.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Message returns the user-facing text for err, or fallback when err did
// not come from the backend.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// errorMessage extracts a message from a backend error body. It checks
// detail, message and error first, then DRF field errors, and finally falls
// back to the status code.
func errorMessage(status int, body []byte) string {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if s, ok := data[key].(string); ok && s != "" {
				return s
			}
		}
		if msg := fieldErrors(data); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func fieldErrors(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	// non_field_errors reads better without a prefix, so it sorts first
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "non_field_errors" {
			return keys[j] != "non_field_errors"
		}
		if keys[j] == "non_field_errors" {
			return false
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		msg := firstString(data[k])
		if msg == "" {
			continue
		}
		if k == "non_field_errors" {
			return msg
		}
		return strings.ReplaceAll(k, "_", " ") + ": " + msg
	}
	return ""
}

func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
