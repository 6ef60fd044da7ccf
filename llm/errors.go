package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
)

// StatusError carries the HTTP status a provider answered with
type StatusError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Retryable reports whether a failed completion is worth another attempt.
// Cancellation and client errors other than 408 and 429 are final.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.StatusCode >= 500:
			return true
		case statusErr.StatusCode >= 400:
			return false
		}
	}
	return true
}

var statusPattern = regexp.MustCompile(`status code (\d{3})`)

// withStatus wraps err in a StatusError when its message names an HTTP status
func withStatus(provider string, err error) error {
	m := statusPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return err
	}
	code, _ := strconv.Atoi(m[1])
	return &StatusError{Provider: provider, StatusCode: code, Err: err}
}
