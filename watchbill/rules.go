/*
rules.go - Advisory schedule rule evaluation

PURPOSE:
  Scores a full proposed per-person/per-day shift assignment grid against
  the command's fairness and safety rules. Every finding is advisory text;
  the evaluator never fails the caller and skips a person or day for a
  check when the data that check needs is missing.

THE RULES:
  1. Designated-role personnel stand day watches on workdays only.
  2. No watch the day before leave/TDY/special liberty.
  3. Two days before leave/TDY/special liberty, night watch only.
  4. No watch the day after leave/TDY/special liberty.
  5. Only night watch the day after leave/TDY/special liberty.
  6. Personnel stand an equivalent share of watches per month.
  7. Working day is 0800-1600; all other weekday hours are off duty.
  8. Weekend/holiday hours run 1600 Friday to 0800 Monday.
  9. Everyone stands at least one watch per month.

  Rules 7 and 8 are definitions consumed by the valuation table, not
  checks. Rule 6 compares a raw shift count against a point-valued
  expectation; the scales differ but the published tolerance of 1 is
  defined against exactly that comparison, so it is kept.

SEE ALSO:
  - eligibility.go: The same absence patterns applied per person
  - allocator.go: The expected points rule 6 checks against
*/
package watchbill

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/watchbill-engine/calendar"
)

// =============================================================================
// ASSIGNMENT GRID
// =============================================================================

// AssignmentGrid is an externally-produced proposed schedule: one shift
// per day of the month per person. The core never produces one.
type AssignmentGrid map[string][]Shift

// RuleCatalog is the published rule text, keyed by rule number.
var RuleCatalog = map[int]string{
	1: "designated-role personnel can only stand weekday day watches",
	2: "no watch can be scheduled the day before leave/TDY/special liberty",
	3: "two days before leave/TDY/special liberty, only night watch can be scheduled",
	4: "no watch can be scheduled the day after leave/TDY/special liberty",
	5: "only night watch can be scheduled the day after leave/TDY/special liberty",
	6: "personnel are expected to stand an equivalent number of watches per month",
	7: "working day defined as 0800-1600, off duty hour defined as all other times",
	8: "weekend/holiday hour defined from 1600 Friday to 0800 Monday",
	9: "all personnel stand at least one watch per month",
}

var countTolerance = decimal.NewFromInt(1)

// =============================================================================
// EVALUATION
// =============================================================================

// EvaluateAssignment checks the grid against the rule set and returns the
// advisory violations found, ordered by person name then rule. The roster
// supplies role flags and availability; expected is the allocator output.
func EvaluateAssignment(grid AssignmentGrid, roster *Roster, expected map[string]decimal.Decimal) []string {
	names := make([]string, 0, len(grid))
	for name := range grid {
		names = append(names, name)
	}
	sort.Strings(names)

	var violations []string
	for _, name := range names {
		violations = append(violations, evaluatePerson(name, grid[name], roster, expected)...)
	}
	return violations
}

func evaluatePerson(name string, shifts []Shift, roster *Roster, expected map[string]decimal.Decimal) []string {
	var violations []string

	person, onRoster := roster.Person(name)

	// Rule 1: designated-role day watches on workdays only.
	if onRoster && person.Designated {
		for day := 1; day <= len(shifts); day++ {
			if shifts[day-1] != ShiftDay {
				continue
			}
			c, err := roster.Calendar().Classification(day)
			if err != nil {
				continue
			}
			if c != calendar.Workday {
				violations = append(violations, fmt.Sprintf(
					"rule 1 violation: %s assigned day watch on a non-workday (day %d)", name, day))
			}
		}
	}

	// Rules 2-5 read absence patterns from the availability vector; skip
	// them entirely when no vector is on file.
	if onRoster && person.Availability != nil {
		v := person.Availability
		n := len(shifts)
		if len(v) < n {
			n = len(v)
		}
		for i := 0; i < n; i++ {
			shift := shifts[i]

			if i > 0 && v[i-1].Unavailable() && shift != ShiftNone {
				violations = append(violations, fmt.Sprintf(
					"rule 2 violation: %s has a watch the day before leave/TDY/special liberty (day %d)", name, i+1))
			}
			if i > 1 && v[i-2].Unavailable() && shift == ShiftDay {
				violations = append(violations, fmt.Sprintf(
					"rule 3 violation: %s has a day watch two days before leave/TDY/special liberty (day %d)", name, i+1))
			}
			if i < n-1 && v[i+1].Unavailable() {
				if shift != ShiftNone {
					violations = append(violations, fmt.Sprintf(
						"rule 4 violation: %s has a watch the day after leave/TDY/special liberty (day %d)", name, i+1))
				}
				if shift == ShiftDay {
					violations = append(violations, fmt.Sprintf(
						"rule 5 violation: %s has a day watch the day after leave/TDY/special liberty (day %d)", name, i+1))
				}
			}
		}
	}

	assigned := 0
	for _, s := range shifts {
		if s != ShiftNone {
			assigned++
		}
	}

	// Rule 6: raw watch count against the point-valued expectation. The
	// published tolerance of 1 is defined against this exact comparison.
	if exp, ok := expected[name]; ok {
		diff := decimal.NewFromInt(int64(assigned)).Sub(exp).Abs()
		if diff.GreaterThan(countTolerance) {
			violations = append(violations, fmt.Sprintf(
				"rule 6 violation: %s has %d watches, expected %s points", name, assigned, exp.StringFixed(1)))
		}
	}

	// Rule 9: at least one watch for everyone.
	if assigned == 0 {
		violations = append(violations, fmt.Sprintf(
			"rule 9 violation: %s has no watches assigned", name))
	}

	return violations
}
