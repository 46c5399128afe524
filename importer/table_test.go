package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/watchbill-engine/importer"
	"github.com/warp/watchbill-engine/watchbill"
)

func TestParseTable_Basic(t *testing.T) {
	// GIVEN: Two pasted rows and one designated name
	// THEN: Names, flags, and vectors all parse, in row order

	table := "CTTC Thompson\t2\t3\t0\t8\t0\n" +
		"LTJG Bailey\t0\t0\t1\t2\t3\n"

	entries, err := importer.ParseTable(table, []string{"LTJG Bailey"})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "CTTC Thompson", entries[0].Name)
	assert.False(t, entries[0].Designated)
	assert.Equal(t, []int{2, 3, 0, 8, 0}, entries[0].Vector.Ints())

	assert.Equal(t, "LTJG Bailey", entries[1].Name)
	assert.True(t, entries[1].Designated)
}

func TestParseTable_SkipsShortRows(t *testing.T) {
	table := "\n" +
		"some stray text\n" +
		"OS1 Tillman\t0\t9\t0\n" +
		"\n"

	entries, err := importer.ParseTable(table, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "OS1 Tillman", entries[0].Name)
}

func TestParseTable_RepeatedNameReplacesVector(t *testing.T) {
	table := "ENC Tran\t0\t0\t0\n" +
		"ENC Tran\t2\t2\t2\n"

	entries, err := importer.ParseTable(table, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []int{2, 2, 2}, entries[0].Vector.Ints())
}

func TestParseTable_BadCode(t *testing.T) {
	table := "EMC Daves\t0\tx\t0\n"

	_, err := importer.ParseTable(table, nil)
	var perr *importer.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, 3, perr.Field)
}

func TestApply_AddsAndReplaces(t *testing.T) {
	// GIVEN: A roster that already knows one of the two imported names
	// THEN: The known name's vector is replaced, the new name is added

	r, err := watchbill.NewRoster(2025, 11) // 30 days
	require.NoError(t, err)
	require.NoError(t, r.AddPerson(watchbill.NewPerson("ENC Tran", false)))

	entries := []importer.Entry{
		{Name: "ENC Tran", Vector: make(watchbill.AvailabilityVector, 30)},
		{Name: "GSMC Mckeown", Designated: true, Vector: make(watchbill.AvailabilityVector, 30)},
	}
	require.NoError(t, importer.Apply(r, entries))

	assert.Len(t, r.People(), 2)
	p, ok := r.Person("ENC Tran")
	require.True(t, ok)
	assert.Len(t, p.Availability, 30)
}

func TestApply_ValidationErrorStops(t *testing.T) {
	r, err := watchbill.NewRoster(2025, 11)
	require.NoError(t, err)

	entries := []importer.Entry{
		{Name: "EMC Daves", Vector: make(watchbill.AvailabilityVector, 5)},
	}
	err = importer.Apply(r, entries)
	assert.ErrorIs(t, err, watchbill.ErrBadAvailabilityLength)
	assert.Empty(t, r.People())
}
