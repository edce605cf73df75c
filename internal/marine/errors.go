package marine

import (
	"errors"
	"fmt"

	"github.com/surfhub/swellcast/backend-go/internal/models"
)

// ErrMarineDataUnavailable is returned when every selected source failed.
var ErrMarineDataUnavailable = errors.New("marine data unavailable")

// ProviderError represents a failure of a single marine data source. It is
// always recoverable by moving on to the next source.
type ProviderError struct {
	Source     models.DataSource
	Message    string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s provider error: %s", e.Source, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new provider error
func NewProviderError(source models.DataSource, message string, err error) *ProviderError {
	return &ProviderError{
		Source:  source,
		Message: message,
		Err:     err,
	}
}

func newStatusError(source models.DataSource, statusCode int) *ProviderError {
	return &ProviderError{
		Source:     source,
		Message:    "unexpected response",
		StatusCode: statusCode,
	}
}

// IsProviderError reports whether err carries a *ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
