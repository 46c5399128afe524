/*
Package watchbill implements the fairness-balanced watch schedule engine.

PURPOSE:
  Distributes a month's duty-point pool across a roster proportionally to
  availability and role weight, tracks actually-stood watch points against
  that fair share, infers per-day watch eligibility from absence patterns,
  and scores proposed schedules against the command's fairness rules.

KEY CONCEPTS IN THIS FILE (status.go):
  - DayStatus: a person's status on one day, wire-coded 0-9
  - AvailabilityVector: one status per day of a month
  - Shift: which watch (none, day, night)

STATUS CODES:
  The single 0-9 sequence is the wire format used by every spreadsheet and
  stored record, so it is preserved as-is. Codes 8 and 9 are retroactive
  markers ("a watch was in fact stood here"), not availability states.

DESIGN PRINCIPLES:
  1. Validation at ingestion: vector length and code range are checked when
     a vector enters a roster, never re-checked at read time
  2. Precision: point arithmetic uses decimal.Decimal end to end

SEE ALSO:
  - eligibility.go: Sliding-window shift eligibility
  - allocator.go: Fair-share distribution
  - roster.go: The month aggregate
*/
package watchbill

import "fmt"

// =============================================================================
// DAY STATUS - Per-day personnel status (wire codes 0-9)
// =============================================================================

type DayStatus int

const (
	StatusAvailable       DayStatus = 0 // available for duty, no restrictions
	StatusLeaveStart      DayStatus = 1 // first day of leave or travel day to TDY
	StatusLeave           DayStatus = 2 // on leave or TDY
	StatusLeaveEnd        DayStatus = 3 // final day of leave or travel day from TDY
	StatusLibertyStart    DayStatus = 4 // first day of special liberty
	StatusLiberty         DayStatus = 5 // special liberty, no charge to leave
	StatusLibertyEnd      DayStatus = 6 // last day of special liberty
	StatusLocalEvent      DayStatus = 7 // local event, cannot stand watch
	StatusStoodDayWatch   DayStatus = 8 // retroactive: day watch was stood
	StatusStoodNightWatch DayStatus = 9 // retroactive: night watch was stood
)

// Valid reports whether s is a defined status code.
func (s DayStatus) Valid() bool {
	return s >= StatusAvailable && s <= StatusStoodNightWatch
}

// CountsAvailable reports whether the status counts toward the availability
// fraction used for allocation. Everything except the explicit leave/TDY
// codes counts: special liberty, local events, and retroactive stood-watch
// markers all still represent a body attached to the command.
func (s DayStatus) CountsAvailable() bool {
	switch s {
	case StatusLeaveStart, StatusLeave, StatusLeaveEnd:
		return false
	default:
		return true
	}
}

// Unavailable reports whether the status blocks standing watch that day.
// This is the set the eligibility window and schedule rules share.
func (s DayStatus) Unavailable() bool {
	switch s {
	case StatusLeaveStart, StatusLeave, StatusLeaveEnd,
		StatusLibertyStart, StatusLiberty, StatusLocalEvent:
		return true
	default:
		return false
	}
}

func (s DayStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusLeaveStart:
		return "leave_start"
	case StatusLeave:
		return "leave"
	case StatusLeaveEnd:
		return "leave_end"
	case StatusLibertyStart:
		return "liberty_start"
	case StatusLiberty:
		return "liberty"
	case StatusLibertyEnd:
		return "liberty_end"
	case StatusLocalEvent:
		return "local_event"
	case StatusStoodDayWatch:
		return "stood_day_watch"
	case StatusStoodNightWatch:
		return "stood_night_watch"
	default:
		return "unknown"
	}
}

// =============================================================================
// AVAILABILITY VECTOR
// =============================================================================

// AvailabilityVector holds one DayStatus per day of a specific month,
// index 0 holding day 1.
type AvailabilityVector []DayStatus

// Validate checks length and code range. Called at ingestion only.
func (v AvailabilityVector) Validate(name string, daysInMonth int) error {
	if len(v) != daysInMonth {
		return &BadAvailabilityLengthError{Name: name, Got: len(v), Want: daysInMonth}
	}
	for i, s := range v {
		if !s.Valid() {
			return &BadStatusError{Name: name, Day: i + 1, Code: int(s)}
		}
	}
	return nil
}

// FromInts converts raw wire codes into a vector without validating;
// callers validate at ingestion.
func FromInts(codes []int) AvailabilityVector {
	v := make(AvailabilityVector, len(codes))
	for i, c := range codes {
		v[i] = DayStatus(c)
	}
	return v
}

// Ints returns the raw wire codes.
func (v AvailabilityVector) Ints() []int {
	out := make([]int, len(v))
	for i, s := range v {
		out[i] = int(s)
	}
	return out
}

// BadStatusError reports an out-of-range status code at ingestion.
type BadStatusError struct {
	Name string
	Day  int
	Code int
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("bad status code %d for %q on day %d", e.Code, e.Name, e.Day)
}

func (e *BadStatusError) Unwrap() error {
	return ErrInvalidStatusCode
}

// =============================================================================
// SHIFT
// =============================================================================

// Shift identifies which watch is assigned or stood on a day.
type Shift int

const (
	ShiftNone Shift = iota
	ShiftDay
	ShiftNight
)

func (s Shift) String() string {
	switch s {
	case ShiftNone:
		return "none"
	case ShiftDay:
		return "day"
	case ShiftNight:
		return "night"
	default:
		return "unknown"
	}
}
