package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/taxrefund/pkg/taxsdk"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrUserNotFound        = errors.New("user not found")
	ErrNotFound            = errors.New("not found")
	ErrUpstream            = errors.New("record service error")
	ErrUpstreamUnavailable = errors.New("record service unavailable")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionInvalid      = errors.New("session invalid")
)

// ValidationError carries the message shown to the caller. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// ValidationMessage returns the user-facing message of a validation error.
func ValidationMessage(err error) (string, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message, true
	}
	return "", false
}

// upstreamError classifies a failed record-service call. Transport failures
// are ErrUpstreamUnavailable; anything else, including undecodable bodies,
// is ErrUpstream. The original error stays reachable for errors.As.
func upstreamError(err error) error {
	if taxsdk.IsTransport(err) {
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
