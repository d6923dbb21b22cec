// Package ai defines the contract shared by all generative-text backends. A
// provider turns a comparison request into raw model output; parsing and
// validation happen downstream in the referee.
package ai

import (
	"context"
	"fmt"
)

// Request carries the inputs for one comparison prompt. The caller validates
// and trims the fields before the request reaches any provider.
type Request struct {
	CareerA  string
	CareerB  string
	UserName string
}

// Provider is implemented by every generative backend (local model, hosted
// model, mock). Generate returns the raw response text, which may contain
// markdown fencing or surrounding prose.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// ErrorKind classifies provider failures for fallback decisions.
type ErrorKind string

const (
	// ErrUnavailable means the backend cannot be reached at all, for example
	// a missing credential or a local endpoint that is not running.
	ErrUnavailable ErrorKind = "unavailable"
	// ErrTimeout means the backend did not answer within its deadline.
	ErrTimeout ErrorKind = "timeout"
	// ErrExhausted means every model or retry the backend was willing to try
	// has failed.
	ErrExhausted ErrorKind = "exhausted"
)

// ProviderError is returned by adapters when generation fails. The referee
// treats any ProviderError as "advance to the next provider".
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s provider %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error { return e.Err }
