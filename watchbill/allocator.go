/*
allocator.go - Fair-share point allocation

PURPOSE:
  Splits a month's total watch-point pool across the roster. Two tiers:

  1. Designated-role personnel (department heads standing the command
     rotation) are pinned to a fixed monthly target of 28 points, scaled
     by their availability fraction.
  2. Whatever remains of the pool is split among regular personnel in
     proportion to availabilityFraction x roleWeight.

  The designated tier is funded first; the remainder may go negative if
  designated targets oversubscribe a short month, and that negative
  remainder is propagated as-is so the imbalance stays visible.

INVARIANT:
  When every regular person has positive weight and the remainder is
  non-negative, the expected values sum to exactly the monthly pool
  (within decimal division precision).

SEE ALSO:
  - points.go: MonthlyPool
  - roster.go: Person and the availability fraction inputs
*/
package watchbill

import (
	"github.com/shopspring/decimal"
	"github.com/warp/watchbill-engine/calendar"
)

// DesignatedMonthlyTarget is the fixed point target for a fully-available
// designated-role person: one weekday and one weekend watch per month.
var DesignatedMonthlyTarget = decimal.NewFromInt(28)

// =============================================================================
// ALLOCATION
// =============================================================================

// ExpectedPoints computes each person's fair expected point share for the
// month. People with a missing availability vector get a zero fraction and
// therefore a zero share.
func ExpectedPoints(cal *calendar.MonthCalendar, people []*Person) map[string]decimal.Decimal {
	expected := make(map[string]decimal.Decimal, len(people))
	pool := MonthlyPool(cal)

	// Tier 1: designated-role personnel against the fixed target.
	designatedTotal := decimal.Zero
	for _, p := range people {
		if !p.Designated {
			continue
		}
		share := availabilityFraction(p.Availability).Mul(DesignatedMonthlyTarget)
		expected[p.Name] = share
		designatedTotal = designatedTotal.Add(share)
	}

	// Tier 2: the remainder split across regular personnel by weight.
	// A negative remainder (designated targets exceed the pool) is
	// propagated unclamped.
	remaining := pool.Sub(designatedTotal)

	weights := make(map[string]decimal.Decimal, len(people))
	totalWeight := decimal.Zero
	for _, p := range people {
		if p.Designated {
			continue
		}
		w := availabilityFraction(p.Availability).Mul(p.RoleWeight)
		weights[p.Name] = w
		totalWeight = totalWeight.Add(w)
	}

	for _, p := range people {
		if p.Designated {
			continue
		}
		if totalWeight.IsZero() {
			expected[p.Name] = decimal.Zero
			continue
		}
		expected[p.Name] = weights[p.Name].Div(totalWeight).Mul(remaining)
	}

	return expected
}

// availabilityFraction is the share of days where the person's status is
// not an explicit leave/TDY absence. A nil or empty vector yields zero.
func availabilityFraction(v AvailabilityVector) decimal.Decimal {
	if len(v) == 0 {
		return decimal.Zero
	}
	available := 0
	for _, s := range v {
		if s.CountsAvailable() {
			available++
		}
	}
	return decimal.NewFromInt(int64(available)).Div(decimal.NewFromInt(int64(len(v))))
}
