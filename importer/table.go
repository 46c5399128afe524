/*
Package importer turns pasted spreadsheet tables into roster entries.

PURPOSE:
  The availability data lives in a spreadsheet the schedule writer pastes
  straight into the tool: one tab-separated row per person, name first,
  then one status code per day of the month. This package parses that
  shape and applies it to a roster.

FORMAT:
  - Rows split on newline, fields on tab
  - Rows with fewer than two fields are skipped (blank lines, ruler rows)
  - A repeated name replaces the earlier row's vector, matching how the
    writer fixes a row by pasting it again
  - Length and code-range validation happens at roster ingestion, not
    here; the importer only requires the codes to be integers

SEE ALSO:
  - watchbill/roster.go: AddPerson / SetAvailability validation
*/
package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/warp/watchbill-engine/watchbill"
)

// Entry is one parsed table row.
type Entry struct {
	Name       string
	Designated bool
	Vector     watchbill.AvailabilityVector
}

// ParseError reports a malformed code with its table position.
type ParseError struct {
	Line  int // 1-indexed over non-skipped rows' source lines
	Field int // 1-indexed field within the row
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d field %d: %q is not a status code", e.Line, e.Field, e.Value)
}

// ParseTable parses a pasted tab-separated availability table. Names in
// designated are flagged as designated-role. Row order is preserved; a
// repeated name keeps its original position but takes the later vector.
func ParseTable(text string, designated []string) ([]Entry, error) {
	flagged := make(map[string]bool, len(designated))
	for _, name := range designated {
		flagged[name] = true
	}

	var entries []Entry
	index := make(map[string]int)

	for lineNo, line := range strings.Split(strings.TrimSpace(text), "\n") {
		parts := strings.Split(strings.TrimSpace(line), "\t")
		if len(parts) < 2 {
			continue
		}

		name := strings.TrimSpace(parts[0])
		codes := make([]int, 0, len(parts)-1)
		for i, part := range parts[1:] {
			code, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, &ParseError{Line: lineNo + 1, Field: i + 2, Value: part}
			}
			codes = append(codes, code)
		}

		entry := Entry{
			Name:       name,
			Designated: flagged[name],
			Vector:     watchbill.FromInts(codes),
		}
		if at, seen := index[name]; seen {
			entries[at].Vector = entry.Vector
			continue
		}
		index[name] = len(entries)
		entries = append(entries, entry)
	}

	return entries, nil
}

// Apply loads parsed entries onto a roster: new names are added, known
// names get their vector replaced. Stops at the first validation error.
func Apply(roster *watchbill.Roster, entries []Entry) error {
	for _, entry := range entries {
		if _, ok := roster.Person(entry.Name); ok {
			if err := roster.SetAvailability(entry.Name, entry.Vector); err != nil {
				return err
			}
			continue
		}
		p := watchbill.NewPerson(entry.Name, entry.Designated)
		p.Availability = entry.Vector
		if err := roster.AddPerson(p); err != nil {
			return err
		}
	}
	return nil
}
