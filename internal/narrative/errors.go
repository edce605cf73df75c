package narrative

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrGenerationFailed is returned once every attempt has been used up or a
// non-retryable error was hit.
var ErrGenerationFailed = errors.New("narrative generation failed")

// APIError is a non-2xx answer from the text generation service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("text generation API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("text generation API returned status %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether another attempt could succeed. Client errors
// are final; throttling and server errors are not.
func (e *APIError) Retryable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return false
	default:
		return e.StatusCode >= 500
	}
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	var permanent *permanentError
	if errors.As(err, &permanent) {
		return false
	}
	// Transport failures and timeouts.
	return true
}

// permanentError marks failures that no retry can fix, such as an empty
// candidate list.
type permanentError struct {
	msg string
}

func (e *permanentError) Error() string {
	return e.msg
}
