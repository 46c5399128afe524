/*
Package calendar classifies the days of a month into duty-weight categories.

PURPOSE:
  Every watchbill calculation starts from a classified month: each calendar
  day is a workday, the day leading into a weekend, a weekend/holiday day,
  or the final day of a weekend break. The classification drives both the
  point value of each watch and the total point pool for the month.

KEY CONCEPTS IN THIS FILE (classification.go):
  - DayClassification: the four duty-weight categories
  - MonthCalendar: an immutable classified month

DESIGN PRINCIPLES:
  1. Immutability: a MonthCalendar is never mutated after Build; changing
     the days-off configuration means building a new one
  2. Auditability: holiday rules and historical overrides are data tables,
     not control flow

SEE ALSO:
  - calendar.go: Build algorithm (weekday defaults, days off, holidays)
  - holidays.go: Federal holiday rule table
*/
package calendar

import "time"

// =============================================================================
// DAY CLASSIFICATION
// =============================================================================

// DayClassification is the duty-weight category of a single calendar day.
type DayClassification int

const (
	// Workday is a full working day (Monday through Thursday by default).
	Workday DayClassification = iota

	// PreWeekend is a day leading into a weekend or holiday break (Friday
	// by default).
	PreWeekend

	// Weekend is a weekend day, holiday, or custom day off.
	Weekend

	// PostWeekend is the final day of a weekend or holiday break (Sunday
	// by default).
	PostWeekend
)

// Valid reports whether c is one of the four defined classifications.
func (c DayClassification) Valid() bool {
	return c >= Workday && c <= PostWeekend
}

func (c DayClassification) String() string {
	switch c {
	case Workday:
		return "workday"
	case PreWeekend:
		return "pre_weekend"
	case Weekend:
		return "weekend"
	case PostWeekend:
		return "post_weekend"
	default:
		return "unknown"
	}
}

// =============================================================================
// MONTH CALENDAR
// =============================================================================

// MonthCalendar is the ordered classification of every day in one month.
// It is immutable after construction; all accessors return copies.
type MonthCalendar struct {
	year  int
	month time.Month
	days  []DayClassification
}

// Year returns the calendar's year.
func (c *MonthCalendar) Year() int { return c.year }

// Month returns the calendar's month (1-12).
func (c *MonthCalendar) Month() int { return int(c.month) }

// Days returns the number of days in the month.
func (c *MonthCalendar) Days() int { return len(c.days) }

// Classification returns the classification for a 1-indexed day of month.
func (c *MonthCalendar) Classification(day int) (DayClassification, error) {
	if day < 1 || day > len(c.days) {
		return 0, &InvalidDayError{Day: day, DaysInMonth: len(c.days)}
	}
	return c.days[day-1], nil
}

// Classifications returns a copy of the full classification sequence,
// index 0 holding day 1.
func (c *MonthCalendar) Classifications() []DayClassification {
	out := make([]DayClassification, len(c.days))
	copy(out, c.days)
	return out
}

// DaysIn returns the number of days in the given month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
