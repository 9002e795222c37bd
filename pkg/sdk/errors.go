package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("articles api: %s (HTTP %d)", e.Detail, e.StatusCode)
}

// apiError decodes the {"detail": ...} error payload, falling back to
// the HTTP status text.
func apiError(resp *http.Response) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	detail := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		detail = payload.Detail
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}
