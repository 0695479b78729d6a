// Package errs defines the failure taxonomy shared by the fetcher, the
// chat clients and the writer. Callers match with errors.Is against the
// sentinels; nothing in this module retries.
package errs

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrAuthentication    = errors.New("authentication failed")
	ErrNotFound          = errors.New("not found")
	ErrRateLimit         = errors.New("rate limited")
	ErrTransientNetwork  = errors.New("network unavailable")
	ErrTransientService  = errors.New("service unavailable")
	ErrEmptyResponse     = errors.New("empty response")
	ErrFilesystem        = errors.New("filesystem error")
	ErrMissingCredential = errors.New("missing credential")
)

// maxBodyInError caps how much of a response body is echoed into an error.
const maxBodyInError = 512

// StatusError is an HTTP failure from an upstream service.
type StatusError struct {
	Service    string // "reddit", "llm"
	StatusCode int
	Body       string
	Kind       error // one of the sentinels, or nil when unclassified
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: status %d", e.Service, e.StatusCode)
	if e.Kind != nil {
		msg += " (" + e.Kind.Error() + ")"
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

// FromStatus classifies a non-2xx response.
func FromStatus(service string, statusCode int, body []byte) error {
	text := strings.TrimSpace(string(body))
	if len(text) > maxBodyInError {
		text = text[:maxBodyInError] + "..."
	}
	return &StatusError{
		Service:    service,
		StatusCode: statusCode,
		Body:       text,
		Kind:       kindForStatus(statusCode),
	}
}

func kindForStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrAuthentication
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return ErrRateLimit
	case code >= 500:
		return ErrTransientService
	}
	return nil
}

// FromTransport wraps an error returned by http.Client.Do. Context
// cancellation passes through unchanged so the caller sees why it stopped.
func FromTransport(service string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", service, err)
	}
	if IsNetwork(err) {
		return fmt.Errorf("%s: %w: %w", service, ErrTransientNetwork, err)
	}
	return fmt.Errorf("%s: %w", service, err)
}

// IsNetwork reports whether err came from the network layer.
func IsNetwork(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// Filesystem tags err as a write-side failure on path.
func Filesystem(op, path string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, path, ErrFilesystem, err)
}
