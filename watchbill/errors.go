/*
errors.go - Centralized error types for the watchbill engine

PURPOSE:
  All core error types in one place. Every failure is a local validation
  error surfaced synchronously; nothing is retried internally and no
  operation mutates state before its validation passes.

ERROR CATEGORIES:
  1. Roster errors - membership and availability ingestion failures
  2. Ledger errors - stood-watch recording failures
  3. Valuation errors - bad shift or classification lookups

USAGE:
  Adapters branch on sentinels:

    if errors.Is(err, watchbill.ErrUnknownPerson) {
        // 404
    }

SEE ALSO:
  - roster.go: Uses membership errors
  - ledger.go: Uses ErrInvalidDay
  - points.go: Uses ErrInvalidShiftType
*/
package watchbill

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrBadAvailabilityLength is returned when an availability vector's
	// length does not equal the month's day count.
	ErrBadAvailabilityLength = errors.New("availability vector length mismatch")

	// ErrDuplicatePerson is returned when adding a name already on the roster.
	ErrDuplicatePerson = errors.New("duplicate person")

	// ErrUnknownPerson is returned when a named person is not on the roster.
	ErrUnknownPerson = errors.New("unknown person")

	// ErrInvalidDay is returned for a day outside [1, daysInMonth].
	ErrInvalidDay = errors.New("invalid day")

	// ErrInvalidShiftType is returned for a shift/classification pair with
	// no entry in the valuation table.
	ErrInvalidShiftType = errors.New("invalid shift type")

	// ErrInvalidStatusCode is returned for a day status outside 0-9.
	ErrInvalidStatusCode = errors.New("invalid day status code")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// BadAvailabilityLengthError reports a vector length mismatch at ingestion.
type BadAvailabilityLengthError struct {
	Name string
	Got  int
	Want int
}

func (e *BadAvailabilityLengthError) Error() string {
	return fmt.Sprintf("availability vector for %q has %d days, month has %d",
		e.Name, e.Got, e.Want)
}

func (e *BadAvailabilityLengthError) Unwrap() error {
	return ErrBadAvailabilityLength
}

// UnknownPersonError reports a lookup miss on the roster.
type UnknownPersonError struct {
	Name string
}

func (e *UnknownPersonError) Error() string {
	return fmt.Sprintf("person %q not on the roster", e.Name)
}

func (e *UnknownPersonError) Unwrap() error {
	return ErrUnknownPerson
}

// InvalidDayError reports a stood-watch day outside the month.
type InvalidDayError struct {
	Day         int
	DaysInMonth int
}

func (e *InvalidDayError) Error() string {
	return fmt.Sprintf("invalid day %d: month has %d days", e.Day, e.DaysInMonth)
}

func (e *InvalidDayError) Unwrap() error {
	return ErrInvalidDay
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid caller input,
// as opposed to an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrBadAvailabilityLength) ||
		errors.Is(err, ErrDuplicatePerson) ||
		errors.Is(err, ErrInvalidDay) ||
		errors.Is(err, ErrInvalidShiftType) ||
		errors.Is(err, ErrInvalidStatusCode)
}

// IsNotFound reports whether the error indicates a missing person.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownPerson)
}
