package watchbill_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/watchbill-engine/watchbill"
)

// =============================================================================
// MEMBERSHIP
// =============================================================================

func TestRoster_AddPerson_BadVectorLength_FullyRejected(t *testing.T) {
	// GIVEN: August 2023 (31 days) and a 28-day vector
	// WHEN: Adding the person
	// THEN: ErrBadAvailabilityLength and the roster is untouched

	r, err := watchbill.NewRoster(2023, 8)
	require.NoError(t, err)

	p := watchbill.NewPerson("ETC Mills", false)
	p.Availability = make(watchbill.AvailabilityVector, 28)

	err = r.AddPerson(p)
	assert.ErrorIs(t, err, watchbill.ErrBadAvailabilityLength)
	assert.Empty(t, r.People(), "no partial insert")
}

func TestRoster_AddPerson_Duplicate(t *testing.T) {
	r, err := watchbill.NewRoster(2023, 8)
	require.NoError(t, err)

	require.NoError(t, r.AddPerson(watchbill.NewPerson("ETC Mills", false)))
	err = r.AddPerson(watchbill.NewPerson("ETC Mills", true))
	assert.ErrorIs(t, err, watchbill.ErrDuplicatePerson)
}

func TestRoster_RemovePerson(t *testing.T) {
	r, err := watchbill.NewRoster(2023, 8)
	require.NoError(t, err)

	require.NoError(t, r.AddPerson(watchbill.NewPerson("ETC Mills", false)))
	require.NoError(t, r.AddPerson(watchbill.NewPerson("OS1 Vann", false)))

	r.RemovePerson("ETC Mills")
	r.RemovePerson("nobody") // no-op

	people := r.People()
	require.Len(t, people, 1)
	assert.Equal(t, "OS1 Vann", people[0].Name)
}

func TestRoster_SetAvailability_Validation(t *testing.T) {
	r, err := watchbill.NewRoster(2023, 8)
	require.NoError(t, err)
	require.NoError(t, r.AddPerson(watchbill.NewPerson("ETC Mills", false)))

	err = r.SetAvailability("nobody", make(watchbill.AvailabilityVector, 31))
	assert.ErrorIs(t, err, watchbill.ErrUnknownPerson)

	err = r.SetAvailability("ETC Mills", make(watchbill.AvailabilityVector, 30))
	assert.ErrorIs(t, err, watchbill.ErrBadAvailabilityLength)

	bad := make(watchbill.AvailabilityVector, 31)
	bad[10] = watchbill.DayStatus(11)
	err = r.SetAvailability("ETC Mills", bad)
	assert.ErrorIs(t, err, watchbill.ErrInvalidStatusCode)

	require.NoError(t, r.SetAvailability("ETC Mills", make(watchbill.AvailabilityVector, 31)))
}

func TestNewRoster_InvalidMonth(t *testing.T) {
	_, err := watchbill.NewRoster(2023, 13)
	assert.Error(t, err)
}

// =============================================================================
// DUTY LEDGER
// =============================================================================

func TestRoster_RecordStoodWatch_WorkdayDayWatch_Adds10(t *testing.T) {
	// GIVEN: August 2023 where day 1 is a Tuesday (workday)
	// WHEN: Recording a day watch on day 1
	// THEN: Exactly 10 points land on the accumulator

	r, err := watchbill.NewRoster(2023, 8)
	require.NoError(t, err)
	require.NoError(t, r.AddPerson(watchbill.NewPerson("ETC Mills", false)))

	require.NoError(t, r.RecordStoodWatch("ETC Mills", 1, watchbill.ShiftDay))
	assert.True(t, decimal.NewFromInt(10).Equal(r.ActualPoints("ETC Mills")))

	// Accumulates, never replaces: a night watch on the same workday
	// brings the total to 22.
	require.NoError(t, r.RecordStoodWatch("ETC Mills", 2, watchbill.ShiftNight))
	assert.True(t, decimal.NewFromInt(22).Equal(r.ActualPoints("ETC Mills")))
}

func TestRoster_RecordStoodWatch_Errors(t *testing.T) {
	r, err := watchbill.NewRoster(2023, 8)
	require.NoError(t, err)
	require.NoError(t, r.AddPerson(watchbill.NewPerson("ETC Mills", false)))

	assert.ErrorIs(t, r.RecordStoodWatch("nobody", 1, watchbill.ShiftDay), watchbill.ErrUnknownPerson)
	assert.ErrorIs(t, r.RecordStoodWatch("ETC Mills", 0, watchbill.ShiftDay), watchbill.ErrInvalidDay)
	assert.ErrorIs(t, r.RecordStoodWatch("ETC Mills", 32, watchbill.ShiftDay), watchbill.ErrInvalidDay)
	assert.ErrorIs(t, r.RecordStoodWatch("ETC Mills", 1, watchbill.ShiftNone), watchbill.ErrInvalidShiftType)

	// Failed records leave the accumulator untouched.
	assert.True(t, r.ActualPoints("ETC Mills").IsZero())
}

// =============================================================================
// DEVIATION
// =============================================================================

func TestComputeDeviation_Identity(t *testing.T) {
	// THEN: expected - actual == deviation exactly, and zero deviation
	//       means zero percentage

	d := watchbill.ComputeDeviation(decimal.NewFromInt(40), decimal.NewFromInt(22))
	assert.True(t, decimal.NewFromInt(18).Equal(d.Deviation))
	assert.True(t, decimal.NewFromInt(45).Equal(d.Percent))

	even := watchbill.ComputeDeviation(decimal.NewFromInt(36), decimal.NewFromInt(36))
	assert.True(t, even.Deviation.IsZero())
	assert.True(t, even.Percent.IsZero())
}

func TestComputeDeviation_NonPositiveExpected_ZeroPercent(t *testing.T) {
	d := watchbill.ComputeDeviation(decimal.Zero, decimal.NewFromInt(10))
	assert.True(t, d.Percent.IsZero())
	assert.True(t, decimal.NewFromInt(-10).Equal(d.Deviation))

	neg := watchbill.ComputeDeviation(decimal.NewFromInt(-5), decimal.Zero)
	assert.True(t, neg.Percent.IsZero(), "negative expectations report no percentage")
}

func TestComputeDeviation_SignConvention(t *testing.T) {
	// Positive deviation: stood fewer points than the fair share.
	under := watchbill.ComputeDeviation(decimal.NewFromInt(50), decimal.NewFromInt(10))
	assert.True(t, under.Deviation.IsPositive())

	// Negative deviation: stood more than the fair share.
	over := watchbill.ComputeDeviation(decimal.NewFromInt(10), decimal.NewFromInt(50))
	assert.True(t, over.Deviation.IsNegative())
}

// =============================================================================
// SUMMARY
// =============================================================================

func TestRoster_Summary_InsertionOrderAndIdempotence(t *testing.T) {
	r, err := watchbill.NewRoster(2023, 8)
	require.NoError(t, err)

	head := watchbill.NewPerson("CDR Reyes", true)
	head.Availability = availableDays(31, 31)
	require.NoError(t, r.AddPerson(head))

	reg := watchbill.NewPerson("ETC Mills", false)
	reg.Availability = availableDays(31, 31)
	require.NoError(t, r.AddPerson(reg))

	require.NoError(t, r.RecordStoodWatch("ETC Mills", 1, watchbill.ShiftDay))

	first := r.Summary()
	second := r.Summary()
	require.Len(t, first, 2)

	assert.Equal(t, "CDR Reyes", first[0].Name)
	assert.True(t, first[0].Designated)
	assert.Equal(t, "ETC Mills", first[1].Name)

	assert.True(t, decimal.NewFromInt(10).Equal(first[1].Actual))
	assert.True(t, first[1].Expected.Sub(first[1].Actual).Equal(first[1].Deviation.Deviation))

	// Recomputation has no side effects.
	assert.Equal(t, first, second)
}
