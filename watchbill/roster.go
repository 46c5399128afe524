/*
roster.go - The month aggregate

PURPOSE:
  A Roster owns everything for exactly one (year, month): the classified
  calendar, the people and their availability vectors, and the duty ledger.
  It is the single entry point I/O adapters talk to.

INVARIANTS:
  - Every availability vector on the roster has length == days in month,
    enforced at ingestion (AddPerson / SetAvailability), never re-checked.
  - The calendar is built once at construction and never mutated; a new
    days-off configuration means a new Roster.
  - No partial mutation on failure: validation always runs before state
    changes.

CONCURRENCY:
  Single-threaded by design. Callers needing concurrent mutation serialize
  on the Roster; reads of the immutable calendar are always safe to share.

SEE ALSO:
  - allocator.go: ExpectedPoints
  - ledger.go: Stood-watch accounting
  - rules.go: Advisory schedule evaluation
*/
package watchbill

import (
	"github.com/shopspring/decimal"
	"github.com/warp/watchbill-engine/calendar"
)

// =============================================================================
// PERSON
// =============================================================================

// Person is one watchstander on a month's roster.
type Person struct {
	Name         string
	Designated   bool            // pinned to the fixed monthly target
	RoleWeight   decimal.Decimal // regular-tier multiplier, default 1
	Availability AvailabilityVector
}

// NewPerson creates a person with the default role weight.
func NewPerson(name string, designated bool) *Person {
	return &Person{Name: name, Designated: designated, RoleWeight: decimal.NewFromInt(1)}
}

// =============================================================================
// ROSTER
// =============================================================================

// Roster is the month aggregate: calendar, people, and duty ledger for one
// (year, month).
type Roster struct {
	year   int
	month  int
	cal    *calendar.MonthCalendar
	people map[string]*Person
	order  []string
	ledger *DutyLedger
}

// NewRoster builds the month calendar and an empty roster. Optional
// daysOff are forwarded to the calendar classifier.
func NewRoster(year, month int, daysOff ...int) (*Roster, error) {
	cal, err := calendar.Build(year, month, daysOff...)
	if err != nil {
		return nil, err
	}
	return &Roster{
		year:   year,
		month:  month,
		cal:    cal,
		people: make(map[string]*Person),
		ledger: NewDutyLedger(cal),
	}, nil
}

// Year returns the roster's year.
func (r *Roster) Year() int { return r.year }

// Month returns the roster's month (1-12).
func (r *Roster) Month() int { return r.month }

// Calendar returns the immutable month calendar.
func (r *Roster) Calendar() *calendar.MonthCalendar { return r.cal }

// AddPerson adds a person to the roster. The availability vector may be
// nil (set later via SetAvailability); a non-nil vector must match the
// month's day count. Fully rejects before touching the roster.
func (r *Roster) AddPerson(p *Person) error {
	if _, exists := r.people[p.Name]; exists {
		return ErrDuplicatePerson
	}
	if p.Availability != nil {
		if err := p.Availability.Validate(p.Name, r.cal.Days()); err != nil {
			return err
		}
	}
	if p.RoleWeight.IsZero() {
		p.RoleWeight = decimal.NewFromInt(1)
	}
	r.people[p.Name] = p
	r.order = append(r.order, p.Name)
	r.ledger.Track(p.Name)
	return nil
}

// RemovePerson drops a person and their accumulator. Removing an unknown
// name is a no-op.
func (r *Roster) RemovePerson(name string) {
	if _, ok := r.people[name]; !ok {
		return
	}
	delete(r.people, name)
	r.ledger.Forget(name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Person looks up a roster member by name.
func (r *Roster) Person(name string) (*Person, bool) {
	p, ok := r.people[name]
	return p, ok
}

// People returns roster members in insertion order.
func (r *Roster) People() []*Person {
	out := make([]*Person, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.people[name])
	}
	return out
}

// SetAvailability replaces a member's availability vector after length and
// code validation.
func (r *Roster) SetAvailability(name string, v AvailabilityVector) error {
	p, ok := r.people[name]
	if !ok {
		return &UnknownPersonError{Name: name}
	}
	if err := v.Validate(name, r.cal.Days()); err != nil {
		return err
	}
	p.Availability = v
	return nil
}

// RecordStoodWatch values the stood watch and adds it to the member's
// accumulator.
func (r *Roster) RecordStoodWatch(name string, day int, shift Shift) error {
	if _, ok := r.people[name]; !ok {
		return &UnknownPersonError{Name: name}
	}
	_, err := r.ledger.Record(name, day, shift)
	return err
}

// ActualPoints returns a member's accumulated stood points.
func (r *Roster) ActualPoints(name string) decimal.Decimal {
	return r.ledger.Actual(name)
}

// ExpectedPoints computes the fair expected share for every member.
func (r *Roster) ExpectedPoints() map[string]decimal.Decimal {
	return ExpectedPoints(r.cal, r.People())
}

// =============================================================================
// SUMMARY
// =============================================================================

// PersonSummary is one member's line in the month summary.
type PersonSummary struct {
	Name       string
	Designated bool
	Deviation
}

// Summary recomputes expected points and deviations for the whole roster,
// in insertion order. Calling it any number of times has no side effects.
func (r *Roster) Summary() []PersonSummary {
	expected := r.ExpectedPoints()
	out := make([]PersonSummary, 0, len(r.order))
	for _, name := range r.order {
		p := r.people[name]
		out = append(out, PersonSummary{
			Name:       name,
			Designated: p.Designated,
			Deviation:  ComputeDeviation(expected[name], r.ledger.Actual(name)),
		})
	}
	return out
}
