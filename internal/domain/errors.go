package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across the domain. Services and controllers match
// them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrTimeslotTaken      = errors.New("timeslot already allocated")
	ErrDuplicateBooking   = errors.New("user already has a booking for this event")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPreconditionFailed = errors.New("publish preconditions not met")
)

// InvalidTransitionError reports a booking status change that is not allowed
// from the booking's current status. It carries both statuses for diagnostics.
type InvalidTransitionError struct {
	Current   RegistrationStatus
	Attempted RegistrationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %q to %q", e.Current, e.Attempted)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// PreconditionError lists every publish requirement the event does not meet,
// not just the first one found.
type PreconditionError struct {
	Missing []string
}

func (e *PreconditionError) Error() string {
	return "cannot publish event: " + strings.Join(e.Missing, ", ")
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionFailed
}
