package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Static errors that can be wrapped with context.
var (
	ErrBaseURLRequired   = errors.New("base URL is required")
	ErrMissingPathParam  = errors.New("missing path parameter")
	ErrUnknownPathParam  = errors.New("unknown path parameter")
	ErrEncodeRequestBody = errors.New("encoding request body")
)

// APIError represents an error payload returned by the API for a non-2xx
// response. Status is filled from the HTTP response; the remaining fields
// come from the error body when it is parseable.
type APIError struct {
	Status int    `json:"-"`
	Code   int    `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Title == "" && e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}

	return fmt.Sprintf("%s: %s (status: %d)", e.Title, e.Detail, e.Status)
}

// parseAPIError builds an APIError from a non-2xx response body. Bodies that
// are not the expected JSON shape still yield a usable status-based error.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	if len(body) > 0 {
		if err := json.Unmarshal(body, apiErr); err != nil {
			apiErr.Detail = string(body)
		}
	}

	if apiErr.Title == "" {
		apiErr.Title = http.StatusText(status)
	}

	return apiErr
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}

	return false
}

// IsServerError checks if the error represents a 5xx response.
func IsServerError(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}

	return false
}
