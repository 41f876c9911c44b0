package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Error is returned by Submit for every failed exchange.
type Error struct {
	Status int // HTTP status, 0 when no response was received
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gateway: HTTP %d: %s", e.Status, e.Msg)
	}
	return "gateway: " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether trying again may succeed: no response at all,
// rate limiting, or a server-side failure.
func (e *Error) Retryable() bool {
	if e.Status == 0 {
		return !errors.Is(e.Err, context.Canceled)
	}
	return e.Status == 429 || e.Status >= 500
}

// describeStatus turns an error response into a short message.
func describeStatus(statusCode int, body []byte) string {
	switch statusCode {
	case 400:
		return "request rejected by the endpoint"
	case 404:
		return "endpoint not found (check the URL)"
	case 405:
		return "endpoint does not accept POST"
	case 429:
		return "rate limited, please wait"
	case 500:
		return "internal error in the inference engine"
	case 502, 503:
		return "inference service temporarily unavailable"
	}

	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		return "no response body"
	}
	return s
}

// FriendlyError converts common network errors to user-friendly messages.
func FriendlyError(err error) string { return friendlyError(err) }

func friendlyError(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "connection refused") {
		return "connection refused (is the service running?)"
	}
	if strings.Contains(msg, "no such host") {
		return "host not found (check the URL)"
	}
	if strings.Contains(msg, "context canceled") {
		return "request canceled"
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded") {
		return "connection timed out"
	}
	if strings.Contains(msg, "EOF") {
		return "connection closed unexpectedly"
	}
	if strings.Contains(msg, "reset by peer") {
		return "connection reset by server"
	}
	return msg
}
