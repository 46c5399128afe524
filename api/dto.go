/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

WIRE CONVENTIONS:
  - Points cross the wire as float64; decimal precision lives inside the
    engine only
  - Shifts are the strings "none" / "day" / "night"
  - Availability vectors are arrays of the raw 0-9 status codes

VALIDATION:
  Request types carry validator struct tags; handlers run them through a
  shared validator instance before touching domain logic.

SEE ALSO:
  - handlers.go: Uses these types
  - watchbill/roster.go: The domain model these mirror
*/
package api

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/watchbill-engine/calendar"
	"github.com/warp/watchbill-engine/watchbill"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// RosterDTO represents a month's roster in API responses.
type RosterDTO struct {
	Year   int         `json:"year"`
	Month  int         `json:"month"`
	Days   int         `json:"days"`
	People []PersonDTO `json:"people"`
}

// PersonDTO represents one watchstander on a roster.
type PersonDTO struct {
	Name         string  `json:"name"`
	Designated   bool    `json:"designated"`
	RoleWeight   float64 `json:"role_weight"`
	Availability []int   `json:"availability,omitempty"`
}

// CreateRosterRequest is the request to create a month's roster.
type CreateRosterRequest struct {
	Year    int   `json:"year" validate:"required,min=1,max=9999"`
	Month   int   `json:"month" validate:"required,min=1,max=12"`
	DaysOff []int `json:"days_off,omitempty" validate:"omitempty,dive,min=1,max=31"`
}

// AddPersonRequest is the request to add a watchstander to a roster.
type AddPersonRequest struct {
	Name         string  `json:"name" validate:"required"`
	Designated   bool    `json:"designated"`
	RoleWeight   float64 `json:"role_weight" validate:"omitempty,gt=0"`
	Availability []int   `json:"availability,omitempty"`
}

// SetAvailabilityRequest replaces a watchstander's status vector.
type SetAvailabilityRequest struct {
	Vector []int `json:"vector" validate:"required,min=28,max=31"`
}

// RecordWatchRequest logs a stood watch.
type RecordWatchRequest struct {
	Name  string `json:"name" validate:"required"`
	Day   int    `json:"day" validate:"required,min=1,max=31"`
	Shift string `json:"shift" validate:"required,oneof=day night"`
}

// ImportRequest carries a pasted tab-separated availability table.
type ImportRequest struct {
	Table      string   `json:"table" validate:"required"`
	Designated []string `json:"designated,omitempty"`
}

// EligibilityRequest asks which shifts a status vector permits per day.
type EligibilityRequest struct {
	Vector []int `json:"vector" validate:"required,min=1,max=31"`
}

// EligibilityDTO is the per-day eligibility answer.
type EligibilityDTO struct {
	Days []string `json:"days"` // "none", "day_only", "night_only", "either"
}

// EvaluateRequest carries a proposed assignment grid: person name to one
// shift string per day.
type EvaluateRequest struct {
	Grid map[string][]string `json:"grid" validate:"required,min=1"`
}

// EvaluateDTO lists the advisory violations found.
type EvaluateDTO struct {
	Violations []string `json:"violations"`
}

// CalendarDTO is the month's day classifications.
type CalendarDTO struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Days  []string `json:"days"` // "workday", "pre_weekend", "weekend", "post_weekend"
}

// SummaryDTO is one watchstander's line in the month summary.
type SummaryDTO struct {
	Name       string  `json:"name"`
	Designated bool    `json:"designated"`
	Expected   float64 `json:"expected"`
	Actual     float64 `json:"actual"`
	Deviation  float64 `json:"deviation"`
	Percent    float64 `json:"percent"`
}

// ExpectedDTO maps watchstander to fair expected points.
type ExpectedDTO struct {
	Pool     float64            `json:"pool"`
	Expected map[string]float64 `json:"expected"`
}

// WatchDTO is one logged watch.
type WatchDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Day   int    `json:"day"`
	Shift string `json:"shift"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toPersonDTO(p *watchbill.Person) PersonDTO {
	weight, _ := p.RoleWeight.Float64()
	dto := PersonDTO{
		Name:       p.Name,
		Designated: p.Designated,
		RoleWeight: weight,
	}
	if p.Availability != nil {
		dto.Availability = p.Availability.Ints()
	}
	return dto
}

func toRosterDTO(r *watchbill.Roster) RosterDTO {
	dto := RosterDTO{
		Year:  r.Year(),
		Month: r.Month(),
		Days:  r.Calendar().Days(),
	}
	for _, p := range r.People() {
		dto.People = append(dto.People, toPersonDTO(p))
	}
	return dto
}

func toSummaryDTOs(summaries []watchbill.PersonSummary) []SummaryDTO {
	dtos := make([]SummaryDTO, len(summaries))
	for i, s := range summaries {
		expected, _ := s.Expected.Float64()
		actual, _ := s.Actual.Float64()
		deviation, _ := s.Deviation.Deviation.Float64()
		percent, _ := s.Percent.Float64()
		dtos[i] = SummaryDTO{
			Name:       s.Name,
			Designated: s.Designated,
			Expected:   expected,
			Actual:     actual,
			Deviation:  deviation,
			Percent:    percent,
		}
	}
	return dtos
}

func classificationString(c calendar.DayClassification) string {
	switch c {
	case calendar.Workday:
		return "workday"
	case calendar.PreWeekend:
		return "pre_weekend"
	case calendar.Weekend:
		return "weekend"
	case calendar.PostWeekend:
		return "post_weekend"
	default:
		return "unknown"
	}
}

func eligibilityString(e watchbill.Eligibility) string {
	switch e {
	case watchbill.EligibleDayOnly:
		return "day_only"
	case watchbill.EligibleNightOnly:
		return "night_only"
	case watchbill.EligibleEither:
		return "either"
	default:
		return "none"
	}
}

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func parseShift(s string) (watchbill.Shift, error) {
	switch s {
	case "none", "":
		return watchbill.ShiftNone, nil
	case "day":
		return watchbill.ShiftDay, nil
	case "night":
		return watchbill.ShiftNight, nil
	default:
		return watchbill.ShiftNone, fmt.Errorf("unknown shift %q", s)
	}
}
