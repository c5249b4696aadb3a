package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by services. Controllers map these to HTTP
// status codes; validation errors are never retried by callers.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("actor does not own this aggregate")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrRequestNotActive  = errors.New("tour request is not active")
	ErrDateOutOfWindow   = errors.New("proposed date falls outside the request window")
	ErrDateUnavailable   = errors.New("date is unavailable for this venue")
	ErrHoldLimitExceeded = errors.New("hold limit exceeded for this tour request")
	ErrInvalidCapacity   = errors.New("capacity must be greater than zero")
	ErrInvalidWindow     = errors.New("invalid request window")
)

// CascadeStep identifies one write in the accept-bid cascade.
type CascadeStep string

const (
	StepAcceptBid       CascadeStep = "accept_bid"
	StepCancelSiblings  CascadeStep = "cancel_siblings"
	StepCompleteRequest CascadeStep = "complete_request"
	StepCreateShow      CascadeStep = "create_show"
)

// PersistenceError reports a repository write failure. For cascades it
// records which steps already committed so the caller can retry the
// remainder idempotently.
type PersistenceError struct {
	Op        string
	Completed []CascadeStep
	Err       error
}

func (e *PersistenceError) Error() string {
	if len(e.Completed) == 0 {
		return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
	}
	steps := make([]string, len(e.Completed))
	for i, s := range e.Completed {
		steps[i] = string(s)
	}
	return fmt.Sprintf("persistence failure in %s after [%s]: %v",
		e.Op, strings.Join(steps, ", "), e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps a repository error with operation context.
func NewPersistenceError(op string, err error, completed ...CascadeStep) *PersistenceError {
	return &PersistenceError{Op: op, Completed: completed, Err: err}
}

// IsValidation reports whether err is a caller mistake that must not be
// retried.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrRequestNotActive) ||
		errors.Is(err, ErrDateOutOfWindow) ||
		errors.Is(err, ErrDateUnavailable) ||
		errors.Is(err, ErrHoldLimitExceeded) ||
		errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrInvalidWindow)
}

// IsPersistence reports whether err is a retryable repository failure.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
