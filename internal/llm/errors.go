package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrRejected is a client error the provider will keep refusing: bad
// credentials, an unknown model or a malformed request.
type ErrRejected struct {
	StatusCode int
	Err        error
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("request rejected (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *ErrRejected) Unwrap() error { return e.Err }

// Auth reports whether the provider refused the credentials.
func (e *ErrRejected) Auth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ErrInvalidResponse indicates the LLM returned content that is empty or
// does not conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates a structured response was truncated at the
// MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// classifyStatus maps an HTTP status from a provider SDK error onto the
// package's error types.
func classifyStatus(code int, retryAfter time.Duration, err error) error {
	switch {
	case code == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	case code == http.StatusRequestTimeout, code == http.StatusConflict:
		return &ErrProviderUnavailable{Err: err}
	case code >= 400 && code < 500:
		return &ErrRejected{StatusCode: code, Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After")))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// UserMessage describes err in one short sentence for a status line.
func UserMessage(err error) string {
	var (
		rl       *ErrRateLimit
		rejected *ErrRejected
		inv      *ErrInvalidResponse
		unavail  *ErrProviderUnavailable
		maxTok   *ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "The AI service took too long to respond."
	case errors.Is(err, context.Canceled):
		return "AI analysis cancelled."
	case errors.As(err, &rl):
		return "The AI service is rate limiting requests. Try again shortly."
	case errors.As(err, &rejected) && rejected.Auth():
		return "The AI service rejected the API key. Check your LSQ_*_API_KEY setting."
	case errors.As(err, &rejected):
		return "The AI service rejected the request. Check the configured model."
	case errors.As(err, &maxTok):
		return "The AI response was cut short."
	case errors.As(err, &inv):
		return "The AI service returned an unusable response."
	case errors.As(err, &unavail):
		return "The AI service is unavailable."
	}
	return "AI analysis failed: " + err.Error()
}
