// internal/errors/errors.go
package errors

import "fmt"

// AuthenticationError is returned when the session credential is missing or
// invalid, or when the GitHub access token is absent from a sync request.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// ValidationError is returned when a required request field is missing,
// before any network call is made.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// UpstreamError is returned for any non-2xx response from an external API
// that is not otherwise classified. It aborts the enclosing request.
type UpstreamError struct {
	API    string
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.API, e.Status)
}

// RateLimitError is returned when the completion endpoint responds with 429.
// The end user should retry later; no automatic retry is performed.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded, please try again later"
}

// QuotaExceededError is returned when the completion endpoint responds
// with 402, meaning usage credits are exhausted.
type QuotaExceededError struct{}

func (e *QuotaExceededError) Error() string {
	return "AI usage limit reached, please add credits"
}
