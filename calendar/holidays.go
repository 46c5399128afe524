/*
holidays.go - Federal holiday rule table

PURPOSE:
  Computes the observed federal holidays for a given year from a fixed rule
  table. Three rule shapes exist: fixed date (July 4), nth weekday of month
  (3rd Monday in January), and last weekday of month (last Monday in May).

  The table is data, not logic: adding or removing a holiday is a one-line
  change with no effect on the classification algorithm.

SEE ALSO:
  - calendar.go: Applies holiday adjacency adjustments during Build
*/
package calendar

import "time"

// =============================================================================
// HOLIDAY RULES
// =============================================================================

// holidayRule describes one federal holiday.
// Day > 0 means a fixed date. Otherwise the holiday falls on the Nth
// occurrence of Weekday in Month; Nth == -1 means the last occurrence.
type holidayRule struct {
	Name    string
	Month   time.Month
	Day     int
	Nth     int
	Weekday time.Weekday
}

var federalHolidayRules = []holidayRule{
	{Name: "New Year's Day", Month: time.January, Day: 1},
	{Name: "Martin Luther King Jr. Day", Month: time.January, Nth: 3, Weekday: time.Monday},
	{Name: "Presidents' Day", Month: time.February, Nth: 3, Weekday: time.Monday},
	{Name: "Memorial Day", Month: time.May, Nth: -1, Weekday: time.Monday},
	{Name: "Juneteenth", Month: time.June, Day: 19},
	{Name: "Independence Day", Month: time.July, Day: 4},
	{Name: "Labor Day", Month: time.September, Nth: 1, Weekday: time.Monday},
	{Name: "Columbus Day", Month: time.October, Nth: 2, Weekday: time.Monday},
	{Name: "Veterans Day", Month: time.November, Day: 11},
	{Name: "Thanksgiving Day", Month: time.November, Nth: 4, Weekday: time.Thursday},
	{Name: "Christmas Day", Month: time.December, Day: 25},
}

// Holiday is a resolved federal holiday in a specific year.
type Holiday struct {
	Name string
	Date time.Time
}

// FederalHolidays returns all federal holidays for the given year,
// in table order.
func FederalHolidays(year int) []Holiday {
	holidays := make([]Holiday, 0, len(federalHolidayRules))
	for _, rule := range federalHolidayRules {
		holidays = append(holidays, Holiday{Name: rule.Name, Date: rule.resolve(year)})
	}
	return holidays
}

func (r holidayRule) resolve(year int) time.Time {
	if r.Day > 0 {
		return time.Date(year, r.Month, r.Day, 0, 0, 0, 0, time.UTC)
	}
	if r.Nth == -1 {
		return lastWeekday(year, r.Month, r.Weekday)
	}
	return nthWeekday(year, r.Month, r.Weekday, r.Nth)
}

// nthWeekday returns the nth occurrence of a weekday in a month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 7*(n-1))
}

// lastWeekday returns the last occurrence of a weekday in a month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	d := time.Date(year, month, DaysIn(year, int(month)), 0, 0, 0, 0, time.UTC)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
