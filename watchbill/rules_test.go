package watchbill_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/watchbill-engine/watchbill"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// augustRoster builds an August 2023 roster where day 5 is a Saturday
// (weekend) and the first four days are plain workdays.
func augustRoster(t *testing.T) *watchbill.Roster {
	t.Helper()
	r, err := watchbill.NewRoster(2023, 8)
	require.NoError(t, err)
	return r
}

func noneShifts(n int) []watchbill.Shift {
	return make([]watchbill.Shift, n)
}

func countRule(violations []string, rule string) int {
	n := 0
	for _, v := range violations {
		if strings.HasPrefix(v, rule) {
			n++
		}
	}
	return n
}

// =============================================================================
// ROLE RULE
// =============================================================================

func TestEvaluateAssignment_DesignatedDayWatchOnWeekend(t *testing.T) {
	// GIVEN: A designated person assigned a day watch on Saturday Aug 5
	// WHEN: Evaluating
	// THEN: Exactly one rule 1 violation for that person/day

	r := augustRoster(t)
	head := watchbill.NewPerson("CDR Reyes", true)
	head.Availability = availableDays(31, 31)
	require.NoError(t, r.AddPerson(head))

	shifts := noneShifts(31)
	shifts[4] = watchbill.ShiftDay // Aug 5, Saturday

	violations := watchbill.EvaluateAssignment(
		watchbill.AssignmentGrid{"CDR Reyes": shifts}, r, r.ExpectedPoints())

	assert.Equal(t, 1, countRule(violations, "rule 1"))
	assert.Contains(t, violations[0], "day 5")
}

func TestEvaluateAssignment_DesignatedDayWatchOnWorkday_Clean(t *testing.T) {
	r := augustRoster(t)
	head := watchbill.NewPerson("CDR Reyes", true)
	head.Availability = availableDays(31, 31)
	require.NoError(t, r.AddPerson(head))

	shifts := noneShifts(31)
	shifts[0] = watchbill.ShiftDay // Aug 1, Tuesday

	violations := watchbill.EvaluateAssignment(
		watchbill.AssignmentGrid{"CDR Reyes": shifts}, r, r.ExpectedPoints())

	assert.Zero(t, countRule(violations, "rule 1"))
}

func TestEvaluateAssignment_RegularDayWatchOnWeekend_NoRoleViolation(t *testing.T) {
	// Rule 1 only binds designated-role personnel.
	r := augustRoster(t)
	reg := watchbill.NewPerson("ETC Mills", false)
	reg.Availability = availableDays(31, 31)
	require.NoError(t, r.AddPerson(reg))

	shifts := noneShifts(31)
	shifts[4] = watchbill.ShiftDay

	violations := watchbill.EvaluateAssignment(
		watchbill.AssignmentGrid{"ETC Mills": shifts}, r, r.ExpectedPoints())

	assert.Zero(t, countRule(violations, "rule 1"))
}

// =============================================================================
// ABSENCE-ADJACENCY RULES
// =============================================================================

func TestEvaluateAssignment_AbsenceAdjacency(t *testing.T) {
	// GIVEN: Leave on days 4-6 and watches placed around it
	// THEN: Rules 2-5 each fire where their window matches

	r := augustRoster(t)
	p := watchbill.NewPerson("ETC Mills", false)
	v := make(watchbill.AvailabilityVector, 31)
	v[3] = watchbill.StatusLeaveStart
	v[4] = watchbill.StatusLeave
	v[5] = watchbill.StatusLeaveEnd
	p.Availability = v
	require.NoError(t, r.AddPerson(p))

	shifts := noneShifts(31)
	shifts[2] = watchbill.ShiftDay   // day 3: followed by leave start
	shifts[6] = watchbill.ShiftNight // day 7: preceded by leave end
	shifts[7] = watchbill.ShiftDay   // day 8: two after leave end

	violations := watchbill.EvaluateAssignment(
		watchbill.AssignmentGrid{"ETC Mills": shifts}, r, r.ExpectedPoints())

	// Day 3 sits before the absence: rules 4 and 5 both flag it.
	assert.Equal(t, 1, countRule(violations, "rule 4"))
	assert.Equal(t, 1, countRule(violations, "rule 5"))
	// Day 7 sits after the absence: rule 2 flags it.
	assert.Equal(t, 1, countRule(violations, "rule 2"))
	// Day 8's day watch is two positions out: rule 3 flags it.
	assert.Equal(t, 1, countRule(violations, "rule 3"))
}

func TestEvaluateAssignment_NightWatchTwoOut_NoRule3(t *testing.T) {
	// Rule 3 only restricts day watches; a night watch two positions from
	// the absence is fine.
	r := augustRoster(t)
	p := watchbill.NewPerson("ETC Mills", false)
	v := make(watchbill.AvailabilityVector, 31)
	v[5] = watchbill.StatusLeave
	p.Availability = v
	require.NoError(t, r.AddPerson(p))

	shifts := noneShifts(31)
	shifts[7] = watchbill.ShiftNight

	violations := watchbill.EvaluateAssignment(
		watchbill.AssignmentGrid{"ETC Mills": shifts}, r, r.ExpectedPoints())

	assert.Zero(t, countRule(violations, "rule 3"))
}

func TestEvaluateAssignment_MissingVector_SkipsAdjacencyRules(t *testing.T) {
	// GIVEN: A person with no availability vector on file
	// THEN: Rules 2-5 are skipped rather than inventing a judgment

	r := augustRoster(t)
	require.NoError(t, r.AddPerson(watchbill.NewPerson("ETC Mills", false)))

	shifts := noneShifts(31)
	shifts[0] = watchbill.ShiftDay

	violations := watchbill.EvaluateAssignment(
		watchbill.AssignmentGrid{"ETC Mills": shifts}, r, r.ExpectedPoints())

	for _, rule := range []string{"rule 2", "rule 3", "rule 4", "rule 5"} {
		assert.Zero(t, countRule(violations, rule), rule)
	}
}

func TestEvaluateAssignment_UnknownPerson_StillCountsWatches(t *testing.T) {
	// GIVEN: A grid entry for someone not on the roster
	// THEN: Role and adjacency checks are skipped but rule 9 still applies

	r := augustRoster(t)

	violations := watchbill.EvaluateAssignment(
		watchbill.AssignmentGrid{"ghost": noneShifts(31)}, r, r.ExpectedPoints())

	assert.Equal(t, 1, countRule(violations, "rule 9"))
	assert.Zero(t, countRule(violations, "rule 1"))
}

// =============================================================================
// FAIRNESS RULES
// =============================================================================

func TestEvaluateAssignment_CountMismatchBeyondTolerance(t *testing.T) {
	// GIVEN: An expectation of 5.0 points and 2 assigned watches
	// THEN: |2 - 5| > 1 fires rule 6; |5 - 5| does not

	r := augustRoster(t)
	p := watchbill.NewPerson("ETC Mills", false)
	p.Availability = availableDays(31, 31)
	require.NoError(t, r.AddPerson(p))

	expected := map[string]decimal.Decimal{"ETC Mills": decimal.NewFromInt(5)}

	low := noneShifts(31)
	low[0], low[1] = watchbill.ShiftDay, watchbill.ShiftNight
	violations := watchbill.EvaluateAssignment(
		watchbill.AssignmentGrid{"ETC Mills": low}, r, expected)
	assert.Equal(t, 1, countRule(violations, "rule 6"))

	exact := noneShifts(31)
	for i := 0; i < 5; i++ {
		exact[i] = watchbill.ShiftNight
	}
	violations = watchbill.EvaluateAssignment(
		watchbill.AssignmentGrid{"ETC Mills": exact}, r, expected)
	assert.Zero(t, countRule(violations, "rule 6"))
}

func TestEvaluateAssignment_ZeroWatches(t *testing.T) {
	r := augustRoster(t)
	p := watchbill.NewPerson("ETC Mills", false)
	p.Availability = availableDays(31, 31)
	require.NoError(t, r.AddPerson(p))

	violations := watchbill.EvaluateAssignment(
		watchbill.AssignmentGrid{"ETC Mills": noneShifts(31)}, r,
		map[string]decimal.Decimal{})

	assert.Equal(t, 1, countRule(violations, "rule 9"))
}

// =============================================================================
// ORDERING
// =============================================================================

func TestEvaluateAssignment_SortedByName(t *testing.T) {
	r := augustRoster(t)

	grid := watchbill.AssignmentGrid{
		"zulu":  noneShifts(31),
		"alpha": noneShifts(31),
	}
	violations := watchbill.EvaluateAssignment(grid, r, nil)

	require.Len(t, violations, 2)
	assert.Contains(t, violations[0], "alpha")
	assert.Contains(t, violations[1], "zulu")
}
