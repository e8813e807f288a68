package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Every provider reports failures as one of the types below so the retry
// and usage layers never look at SDK errors.

// ErrRateLimit is a 429. RetryAfter is zero when the provider gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	msg := "provider rate limit hit"
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(", retry in %s", e.RetryAfter)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrRejected is any other 4xx: a bad key, an unknown model or a request
// the provider refuses. Retrying cannot fix it.
type ErrRejected struct {
	Status int
	Err    error
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("provider rejected request (HTTP %d): %v", e.Status, e.Err)
}

func (e *ErrRejected) Unwrap() error { return e.Err }

// ErrProviderUnavailable is a transport failure or a 5xx.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "provider unreachable"
	}
	return "provider unreachable: " + e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse holds a body that failed JSON or schema checks, such
// as a generated question with three options.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return "malformed model output: " + e.Err.Error()
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is structured output cut off by Request.MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("model output truncated after %d bytes (raise max tokens)", len(e.Content))
}

// classifyStatus wraps an SDK error by its HTTP status. Zero means the
// request never got a response.
func classifyStatus(err error, code int) error {
	switch {
	case code == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case code >= 400 && code < 500:
		return &ErrRejected{Status: code, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
