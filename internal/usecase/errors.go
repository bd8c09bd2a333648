package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrNotConfigured         = errors.New("not configured")
	ErrUpstream              = errors.New("upstream error")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// maxUpstreamBody bounds how much of an upstream response body is kept on errors.
const maxUpstreamBody = 300

// UpstreamError reports a non-success or malformed response from a third
// party. Status is 0 when no HTTP response was received.
type UpstreamError struct {
	Provider string
	Status   int
	Body     string
}

func NewUpstreamError(provider string, status int, body string) *UpstreamError {
	return &UpstreamError{
		Provider: provider,
		Status:   status,
		Body:     Truncate(body, maxUpstreamBody),
	}
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s HTTP %d: %s", e.Provider, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Body)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// Truncate cuts s to at most limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
