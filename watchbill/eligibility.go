/*
eligibility.go - Sliding-window watch eligibility

PURPOSE:
  Converts one person's day-by-day status vector into a per-day answer to
  "which watch, if any, may this person be assigned?". The evaluation is a
  3-cell window (previous day, current day, next day) with no carried
  state: each day's result depends only on its immediate neighbors, so the
  computation is restartable and order-independent per day.

THE WINDOW RULES (in priority order):
  1. Current day unavailable (leave, liberty start/middle, local event)
     -> none
  2. Previous day ends leave, or next day starts leave -> none
     (no watch immediately adjacent to an absence)
  3. Previous day ends special liberty, current available -> night only
  4. Current available, next day starts special liberty -> day only
  5. Previous, current, and next all available -> either
  6. Anything else -> none (conservative default)

  Rule 5 requires a real neighbor on both sides, so the first and last
  day of a month can never be "either".

SEE ALSO:
  - status.go: The status codes and the shared unavailable set
  - rules.go: Schedule-level checks built on the same absence patterns
*/
package watchbill

// =============================================================================
// ELIGIBILITY
// =============================================================================

// Eligibility is the per-day inference of assignable watch types.
type Eligibility int

const (
	EligibleNone Eligibility = iota
	EligibleDayOnly
	EligibleNightOnly
	EligibleEither
)

func (e Eligibility) String() string {
	switch e {
	case EligibleNone:
		return "none"
	case EligibleDayOnly:
		return "day_only"
	case EligibleNightOnly:
		return "night_only"
	case EligibleEither:
		return "either"
	default:
		return "unknown"
	}
}

// =============================================================================
// EVALUATION
// =============================================================================

// EvaluateEligibility computes the per-day eligibility sequence for one
// availability vector. The result has the same length as the input.
func EvaluateEligibility(v AvailabilityVector) []Eligibility {
	out := make([]Eligibility, len(v))
	for i, cur := range v {
		out[i] = evaluateDay(v, i, cur)
	}
	return out
}

func evaluateDay(v AvailabilityVector, i int, cur DayStatus) Eligibility {
	switch {
	case cur.Unavailable():
		return EligibleNone

	case i > 0 && v[i-1] == StatusLeaveEnd,
		i < len(v)-1 && v[i+1] == StatusLeaveStart:
		return EligibleNone

	case i > 0 && v[i-1] == StatusLibertyEnd && cur == StatusAvailable:
		return EligibleNightOnly

	case cur == StatusAvailable && i < len(v)-1 && v[i+1] == StatusLibertyStart:
		return EligibleDayOnly

	case i > 0 && cur == StatusAvailable && i < len(v)-1 &&
		v[i-1] == StatusAvailable && v[i+1] == StatusAvailable:
		return EligibleEither

	default:
		return EligibleNone
	}
}
