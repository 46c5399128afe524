package watchbill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/watchbill-engine/watchbill"
)

// =============================================================================
// WINDOW RULES
// =============================================================================

func TestEvaluateEligibility_UnavailableStatuses(t *testing.T) {
	// GIVEN: A vector where the middle day carries each unavailable code
	// THEN: That day is never eligible

	for _, code := range []watchbill.DayStatus{
		watchbill.StatusLeaveStart,
		watchbill.StatusLeave,
		watchbill.StatusLeaveEnd,
		watchbill.StatusLibertyStart,
		watchbill.StatusLiberty,
		watchbill.StatusLocalEvent,
	} {
		t.Run(code.String(), func(t *testing.T) {
			v := watchbill.AvailabilityVector{0, code, 0}
			got := watchbill.EvaluateEligibility(v)
			assert.Equal(t, watchbill.EligibleNone, got[1])
		})
	}
}

func TestEvaluateEligibility_NoWatchAdjacentToAbsence(t *testing.T) {
	// GIVEN: Leave ends on day 2 and new leave starts on day 5
	// THEN: Day 3 (after leave end) and day 4 (before leave start) are none

	v := watchbill.AvailabilityVector{2, 3, 0, 0, 1, 2}
	got := watchbill.EvaluateEligibility(v)

	assert.Equal(t, watchbill.EligibleNone, got[2], "day after leave end")
	assert.Equal(t, watchbill.EligibleNone, got[3], "day before leave start")
}

func TestEvaluateEligibility_AfterLibertyEnd_NightOnly(t *testing.T) {
	// GIVEN: Special liberty ends on day 2, day 3 available with available
	//        neighbors
	// THEN: Day 3 is night-only

	v := watchbill.AvailabilityVector{5, 6, 0, 0, 0}
	got := watchbill.EvaluateEligibility(v)
	assert.Equal(t, watchbill.EligibleNightOnly, got[2])
}

func TestEvaluateEligibility_BeforeLibertyStart_DayOnly(t *testing.T) {
	// GIVEN: Special liberty starts on day 4
	// THEN: Day 3 is day-only

	v := watchbill.AvailabilityVector{0, 0, 0, 4, 5}
	got := watchbill.EvaluateEligibility(v)
	assert.Equal(t, watchbill.EligibleDayOnly, got[2])
}

func TestEvaluateEligibility_FullyAvailableTriple_Either(t *testing.T) {
	v := watchbill.AvailabilityVector{0, 0, 0, 0, 0}
	got := watchbill.EvaluateEligibility(v)

	assert.Equal(t, watchbill.EligibleEither, got[1])
	assert.Equal(t, watchbill.EligibleEither, got[2])
	assert.Equal(t, watchbill.EligibleEither, got[3])
}

func TestEvaluateEligibility_MonthEdges_NeverEither(t *testing.T) {
	// GIVEN: A fully available month
	// WHEN: Evaluating the first and last day
	// THEN: Both fall back to none — the either rule needs a real
	//       neighbor on both sides

	v := watchbill.AvailabilityVector{0, 0, 0, 0, 0}
	got := watchbill.EvaluateEligibility(v)

	assert.Equal(t, watchbill.EligibleNone, got[0])
	assert.Equal(t, watchbill.EligibleNone, got[len(v)-1])
}

func TestEvaluateEligibility_LeaveEndOnFirstDay_NoOutOfRangeAccess(t *testing.T) {
	// GIVEN: The month opens with a leave-end marker
	// WHEN: Evaluating day 1 and day 2
	// THEN: Day 1 is unavailable, day 2 is blocked as adjacent to absence,
	//       and no out-of-range neighbor is touched

	v := watchbill.AvailabilityVector{3, 0, 0}
	got := watchbill.EvaluateEligibility(v)

	assert.Equal(t, watchbill.EligibleNone, got[0])
	assert.Equal(t, watchbill.EligibleNone, got[1])
}

func TestEvaluateEligibility_StoodMarkers_ConservativeDefault(t *testing.T) {
	// GIVEN: Retroactive stood-watch markers (8/9) in the window
	// THEN: They are not availability states, so the default none applies

	v := watchbill.AvailabilityVector{8, 0, 9, 0, 0}
	got := watchbill.EvaluateEligibility(v)

	assert.Equal(t, watchbill.EligibleNone, got[0])
	assert.Equal(t, watchbill.EligibleNone, got[1], "neighbor is a stood marker, not available")
	assert.Equal(t, watchbill.EligibleNone, got[2])
	assert.Equal(t, watchbill.EligibleNone, got[3])
}

func TestEvaluateEligibility_LengthPreserved(t *testing.T) {
	v := make(watchbill.AvailabilityVector, 31)
	assert.Len(t, watchbill.EvaluateEligibility(v), 31)
	assert.Empty(t, watchbill.EvaluateEligibility(nil))
}
