/*
handlers.go - HTTP API handlers for the watchbill engine

PURPOSE:
  Exposes the watchbill engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Rosters:
    GET    /api/rosters                          List stored rosters
    POST   /api/rosters                          Create a month's roster
    GET    /api/rosters/{year}/{month}           Roster with members
    GET    /api/rosters/{year}/{month}/calendar  Day classifications
    GET    /api/rosters/{year}/{month}/expected  Fair-share allocation
    GET    /api/rosters/{year}/{month}/summary   Expected/actual/deviation
    GET    /api/rosters/{year}/{month}/watches   Watch log

  Members:
    POST   /api/rosters/{year}/{month}/people                       Add
    DELETE /api/rosters/{year}/{month}/people/{name}                Remove
    PUT    /api/rosters/{year}/{month}/people/{name}/availability   Vector

  Operations:
    POST   /api/rosters/{year}/{month}/watches   Log a stood watch
    POST   /api/rosters/{year}/{month}/import    Pasted-table import
    POST   /api/rosters/{year}/{month}/evaluate  Score an assignment grid
    POST   /api/eligibility                      Per-day shift eligibility

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (go-playground/validator)
  3. Load the roster aggregate from the store
  4. Call domain logic
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Roster or member not found
  - 409: Conflict (duplicate member, duplicate watch)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/warp/watchbill-engine/importer"
	"github.com/warp/watchbill-engine/store/sqlite"
	"github.com/warp/watchbill-engine/watchbill"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	validate *validator.Validate
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:    store,
		validate: validator.New(),
	}
}

// loadRoster resolves the {year}/{month} URL segments into the stored
// aggregate, writing the error response itself when that fails.
func (h *Handler) loadRoster(w http.ResponseWriter, r *http.Request) (*watchbill.Roster, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return nil, false
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return nil, false
	}

	roster, err := h.Store.LoadRoster(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load roster", err)
		return nil, false
	}
	if roster == nil {
		writeError(w, http.StatusNotFound, "Roster not found", nil)
		return nil, false
	}
	return roster, true
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// ListRosters returns all stored roster configurations.
func (h *Handler) ListRosters(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListRosters(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rosters", err)
		return
	}

	type rosterRow struct {
		Year    int   `json:"year"`
		Month   int   `json:"month"`
		DaysOff []int `json:"days_off"`
	}
	rows := make([]rosterRow, len(records))
	for i, rec := range records {
		rows[i] = rosterRow{Year: rec.Year, Month: rec.Month, DaysOff: rec.DaysOff}
	}
	writeJSON(w, http.StatusOK, rows)
}

// CreateRoster creates and persists a month's roster.
func (h *Handler) CreateRoster(w http.ResponseWriter, r *http.Request) {
	var req CreateRosterRequest
	if !h.decode(w, r, &req) {
		return
	}

	// Build first so calendar validation runs before anything persists.
	roster, err := watchbill.NewRoster(req.Year, req.Month, req.DaysOff...)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid roster", err)
		return
	}

	if err := h.Store.SaveRoster(r.Context(), req.Year, req.Month, req.DaysOff); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save roster", err)
		return
	}

	writeJSON(w, http.StatusCreated, toRosterDTO(roster))
}

// GetRoster returns a roster with its members.
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toRosterDTO(roster))
}

// GetCalendar returns the month's day classifications.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	cal := roster.Calendar()
	dto := CalendarDTO{Year: roster.Year(), Month: roster.Month()}
	for _, c := range cal.Classifications() {
		dto.Days = append(dto.Days, classificationString(c))
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetExpected returns the fair-share allocation for the month.
func (h *Handler) GetExpected(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	pool, _ := watchbill.MonthlyPool(roster.Calendar()).Float64()
	dto := ExpectedDTO{Pool: pool, Expected: make(map[string]float64)}
	for name, points := range roster.ExpectedPoints() {
		dto.Expected[name], _ = points.Float64()
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetSummary returns expected, actual, and deviation per member.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTOs(roster.Summary()))
}

// =============================================================================
// MEMBER HANDLERS
// =============================================================================

// AddPerson adds a watchstander to the roster.
func (h *Handler) AddPerson(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	var req AddPersonRequest
	if !h.decode(w, r, &req) {
		return
	}

	p := watchbill.NewPerson(req.Name, req.Designated)
	if req.RoleWeight > 0 {
		p.RoleWeight = decimalFromFloat(req.RoleWeight)
	}
	if req.Availability != nil {
		p.Availability = watchbill.FromInts(req.Availability)
	}

	// Validate against the in-memory aggregate before persisting.
	if err := roster.AddPerson(p); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.Store.SaveWatchstander(r.Context(), sqlite.WatchstanderRecord{
		Name:       req.Name,
		Designated: req.Designated,
		RoleWeight: p.RoleWeight.String(),
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save watchstander", err)
		return
	}
	if req.Availability != nil {
		if err := h.Store.SetAvailability(r.Context(), req.Name, roster.Year(), roster.Month(), req.Availability); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save availability", err)
			return
		}
	}

	writeJSON(w, http.StatusCreated, toPersonDTO(p))
}

// RemovePerson drops a watchstander from the directory. Logged watches
// are kept.
func (h *Handler) RemovePerson(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	name := chi.URLParam(r, "name")
	if _, found := roster.Person(name); !found {
		writeError(w, http.StatusNotFound, "Watchstander not found", nil)
		return
	}

	if err := h.Store.DeleteWatchstander(r.Context(), name); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to remove watchstander", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetAvailability replaces a member's status vector for the month.
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	var req SetAvailabilityRequest
	if !h.decode(w, r, &req) {
		return
	}

	name := chi.URLParam(r, "name")
	if err := roster.SetAvailability(name, watchbill.FromInts(req.Vector)); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := h.Store.SetAvailability(r.Context(), name, roster.Year(), roster.Month(), req.Vector); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save availability", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// WATCH LOG HANDLERS
// =============================================================================

// RecordWatch logs a stood watch and values it against the calendar.
func (h *Handler) RecordWatch(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	var req RecordWatchRequest
	if !h.decode(w, r, &req) {
		return
	}

	shift, err := parseShift(req.Shift)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift", err)
		return
	}

	// Dry-run against the aggregate first: unknown member, bad day, and
	// valuation errors all surface before anything is persisted.
	if err := roster.RecordStoodWatch(req.Name, req.Day, shift); err != nil {
		writeDomainError(w, err)
		return
	}

	id, err := h.Store.AppendWatch(r.Context(), req.Name, roster.Year(), roster.Month(), req.Day, shift)
	if err != nil {
		if errors.Is(err, sqlite.ErrDuplicateWatch) {
			writeError(w, http.StatusConflict, "Watch already recorded", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to record watch", err)
		return
	}

	writeJSON(w, http.StatusCreated, WatchDTO{
		ID: id, Name: req.Name, Day: req.Day, Shift: shift.String(),
	})
}

// ListWatches returns the month's watch log.
func (h *Handler) ListWatches(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	watches, err := h.Store.ListWatches(r.Context(), roster.Year(), roster.Month())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list watches", err)
		return
	}

	dtos := make([]WatchDTO, len(watches))
	for i, wr := range watches {
		dtos[i] = WatchDTO{ID: wr.ID, Name: wr.Name, Day: wr.Day, Shift: wr.Shift}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// IMPORT / ELIGIBILITY / EVALUATION
// =============================================================================

// ImportTable parses a pasted availability table and loads it onto the
// roster, persisting every entry.
func (h *Handler) ImportTable(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	var req ImportRequest
	if !h.decode(w, r, &req) {
		return
	}

	entries, err := importer.ParseTable(req.Table, req.Designated)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid table", err)
		return
	}
	if err := importer.Apply(roster, entries); err != nil {
		writeDomainError(w, err)
		return
	}

	for _, entry := range entries {
		p, _ := roster.Person(entry.Name)
		if err := h.Store.SaveWatchstander(r.Context(), sqlite.WatchstanderRecord{
			Name:       entry.Name,
			Designated: entry.Designated,
			RoleWeight: p.RoleWeight.String(),
		}); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save watchstander", err)
			return
		}
		if err := h.Store.SetAvailability(r.Context(), entry.Name, roster.Year(), roster.Month(), entry.Vector.Ints()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save availability", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, toRosterDTO(roster))
}

// Eligibility answers which shifts a status vector permits per day. The
// check is stateless, so it takes the vector directly.
func (h *Handler) Eligibility(w http.ResponseWriter, r *http.Request) {
	var req EligibilityRequest
	if !h.decode(w, r, &req) {
		return
	}

	vector := watchbill.FromInts(req.Vector)
	if err := vector.Validate("", len(req.Vector)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vector", err)
		return
	}

	dto := EligibilityDTO{}
	for _, e := range watchbill.EvaluateEligibility(vector) {
		dto.Days = append(dto.Days, eligibilityString(e))
	}
	writeJSON(w, http.StatusOK, dto)
}

// Evaluate scores a proposed assignment grid against the schedule rules.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.loadRoster(w, r)
	if !ok {
		return
	}

	var req EvaluateRequest
	if !h.decode(w, r, &req) {
		return
	}

	grid := make(watchbill.AssignmentGrid, len(req.Grid))
	for name, shifts := range req.Grid {
		row := make([]watchbill.Shift, len(shifts))
		for i, s := range shifts {
			shift, err := parseShift(s)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid grid", err)
				return
			}
			row[i] = shift
		}
		grid[name] = row
	}

	violations := watchbill.EvaluateAssignment(grid, roster, roster.ExpectedPoints())
	if violations == nil {
		violations = []string{}
	}
	writeJSON(w, http.StatusOK, EvaluateDTO{Violations: violations})
}

// ListRules returns the published rule catalog.
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, watchbill.RuleCatalog)
}

// ResetDatabase clears all data (dev only).
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// decode parses and validates a JSON request body, writing the error
// response itself on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// writeDomainError maps engine errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, watchbill.ErrDuplicatePerson):
		writeError(w, http.StatusConflict, "Watchstander already on roster", err)
	case watchbill.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Watchstander not found", err)
	case watchbill.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
