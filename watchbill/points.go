/*
points.go - Watch point valuation table

PURPOSE:
  Maps (day classification, shift) to the fairness-point value of standing
  that watch, and derives the month's total point pool. These are the fixed
  published values, not runtime configuration.

THE TABLE:
  Hour weights: working 0.75, off-duty 1, weekend/holiday 3.
  Per-shift values:
             workday  pre_weekend  weekend  post_weekend
    day        10         18          36         36
    night      12         36          36         20

  Per-day totals (day + night) are 22 / 54 / 72 / 56, matching the
  published quarter-hour totals for weekday / Friday / Saturday / Sunday.

PRECISION:
  Values are exact integers but all arithmetic downstream (fractions of
  the pool, weighted shares) runs on decimal.Decimal, so the table hands
  out decimals from the start.

SEE ALSO:
  - allocator.go: Distributes MonthlyPool across the roster
  - ledger.go: Values stood watches with ValueOf
*/
package watchbill

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/watchbill-engine/calendar"
)

// =============================================================================
// HOUR WEIGHTS
// =============================================================================

// Hour weights behind the published per-shift values. Working day is
// 0800-1600; weekend/holiday hours run 1600 Friday to 0800 Monday.
var (
	WorkingHourWeight = decimal.RequireFromString("0.75")
	OffDutyHourWeight = decimal.NewFromInt(1)
	WeekendHourWeight = decimal.NewFromInt(3)
)

// =============================================================================
// PER-SHIFT VALUES
// =============================================================================

var (
	pointsWeekdayDay   = decimal.NewFromInt(10)
	pointsWeekdayNight = decimal.NewFromInt(12)
	pointsFridayDay    = decimal.NewFromInt(18)
	pointsWeekendAny   = decimal.NewFromInt(36) // Friday night, Saturday, Sunday day
	pointsSundayNight  = decimal.NewFromInt(20)
)

// ValueOf returns the point value of standing the given shift on a day of
// the given classification. ShiftNone has no value; asking for it (or an
// undefined classification) returns ErrInvalidShiftType.
func ValueOf(c calendar.DayClassification, shift Shift) (decimal.Decimal, error) {
	switch shift {
	case ShiftDay:
		switch c {
		case calendar.Workday:
			return pointsWeekdayDay, nil
		case calendar.PreWeekend:
			return pointsFridayDay, nil
		case calendar.Weekend, calendar.PostWeekend:
			return pointsWeekendAny, nil
		}
	case ShiftNight:
		switch c {
		case calendar.Workday:
			return pointsWeekdayNight, nil
		case calendar.PreWeekend, calendar.Weekend:
			return pointsWeekendAny, nil
		case calendar.PostWeekend:
			return pointsSundayNight, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %s watch on %s", ErrInvalidShiftType, shift, c)
}

// MonthlyPool sums the day and night watch value of every day in the
// calendar. This is the total point mass to distribute across the roster
// for the month.
func MonthlyPool(cal *calendar.MonthCalendar) decimal.Decimal {
	pool := decimal.Zero
	for _, c := range cal.Classifications() {
		day, _ := ValueOf(c, ShiftDay)
		night, _ := ValueOf(c, ShiftNight)
		pool = pool.Add(day).Add(night)
	}
	return pool
}
