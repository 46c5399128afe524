/*
ledger.go - Duty ledger and deviation tracking

PURPOSE:
  Accumulates the points each person has actually stood during the month
  and compares that against their fair expected share. The accumulator is
  append-only for the life of a month: recording a watch adds its value,
  nothing ever subtracts, and deviations are recomputed on demand rather
  than maintained incrementally.

SIGN CONVENTION:
  deviation = expected - actual. Positive means the person has stood fewer
  points than their fair share and owes more duty; negative means they are
  ahead of their share.

SEE ALSO:
  - points.go: ValueOf used to price each stood watch
  - roster.go: Owns one ledger per month aggregate
*/
package watchbill

import (
	"github.com/shopspring/decimal"
	"github.com/warp/watchbill-engine/calendar"
)

// =============================================================================
// DUTY LEDGER
// =============================================================================

// DutyLedger tracks actually-stood watch points per person for one month.
type DutyLedger struct {
	cal    *calendar.MonthCalendar
	actual map[string]decimal.Decimal
}

// NewDutyLedger creates an empty ledger for the given month calendar.
func NewDutyLedger(cal *calendar.MonthCalendar) *DutyLedger {
	return &DutyLedger{cal: cal, actual: make(map[string]decimal.Decimal)}
}

// Track starts a zero accumulator for a person.
func (l *DutyLedger) Track(name string) {
	if _, ok := l.actual[name]; !ok {
		l.actual[name] = decimal.Zero
	}
}

// Forget drops a person's accumulator.
func (l *DutyLedger) Forget(name string) {
	delete(l.actual, name)
}

// Record values the watch stood on the given 1-indexed day and adds it to
// the person's accumulator. Validation runs before any mutation.
func (l *DutyLedger) Record(name string, day int, shift Shift) (decimal.Decimal, error) {
	if _, ok := l.actual[name]; !ok {
		return decimal.Zero, &UnknownPersonError{Name: name}
	}
	classification, err := l.cal.Classification(day)
	if err != nil {
		return decimal.Zero, &InvalidDayError{Day: day, DaysInMonth: l.cal.Days()}
	}
	points, err := ValueOf(classification, shift)
	if err != nil {
		return decimal.Zero, err
	}
	l.actual[name] = l.actual[name].Add(points)
	return points, nil
}

// Actual returns the accumulated stood points for a person (zero if the
// person is unknown; membership errors belong to the roster).
func (l *DutyLedger) Actual(name string) decimal.Decimal {
	return l.actual[name]
}

// =============================================================================
// DEVIATION
// =============================================================================

// Deviation compares expected against actually-stood points.
type Deviation struct {
	Expected  decimal.Decimal
	Actual    decimal.Decimal
	Deviation decimal.Decimal // expected - actual
	Percent   decimal.Decimal // deviation / expected * 100, 0 unless expected > 0
}

var hundred = decimal.NewFromInt(100)

// ComputeDeviation derives the deviation record for one person. Idempotent;
// safe to call any number of times.
func ComputeDeviation(expected, actual decimal.Decimal) Deviation {
	deviation := expected.Sub(actual)
	percent := decimal.Zero
	if expected.IsPositive() {
		percent = deviation.Div(expected).Mul(hundred)
	}
	return Deviation{
		Expected:  expected,
		Actual:    actual,
		Deviation: deviation,
		Percent:   percent,
	}
}
