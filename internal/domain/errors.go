package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across components.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoWallet is returned when a user has no wallet binding on the
	// requested chain.
	ErrNoWallet = errors.New("no wallet binding for chain")

	// ErrUnknownChain is returned when no adapter is registered for a
	// chain tag.
	ErrUnknownChain = errors.New("unknown chain")
)

// ConfigurationError signals a missing provider endpoint or credential.
// It is fatal for the call and never retried.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s is not set", e.Setting)
}

// UpstreamError signals a non-success status, timeout, or unreachable
// provider. It carries the provider name and the underlying cause and is
// never auto-retried within this core.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidationError signals a provider response that does not match the
// required payload shape for a category. It is surfaced, never silently
// coerced into defaults.
type ValidationError struct {
	Category Category
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s payload: %s", e.Category, e.Reason)
}

// TradeExecutionError signals a chain call that did not complete. The
// trade record is marked FAILED with this error captured.
type TradeExecutionError struct {
	Chain string
	Err   error
}

func (e *TradeExecutionError) Error() string {
	return fmt.Sprintf("trade execution on %s failed: %v", e.Chain, e.Err)
}

func (e *TradeExecutionError) Unwrap() error { return e.Err }
