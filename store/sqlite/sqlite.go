/*
Package sqlite provides SQLite-backed persistence for monthly rosters.

PURPOSE:
  Stores everything needed to rebuild a month's roster: the roster row
  itself (year, month, custom days off), the watchstander directory, one
  availability vector per person per month, and an append-only log of
  stood watches. In production, the same patterns apply to PostgreSQL -
  only minor SQL dialect differences.

KEY TABLES:
  rosters:        One row per (year, month) with the days-off config
  watchstanders:  Directory of personnel (role flag, weight)
  availability:   One status vector per person per month, JSON-encoded
  watch_log:      Immutable record of stood watches

APPEND-ONLY ENFORCEMENT:
  The watch log is never updated or deleted; points are derived by
  replaying it through the ledger. A stood watch recorded twice for the
  same person/day/shift is rejected by a unique index.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/watchbill.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  roster, err := store.LoadRoster(ctx, 2025, 11)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - watchbill/roster.go: The aggregate rebuilt by LoadRoster
  - watchbill/ledger.go: Replay target for the watch log
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/watchbill-engine/watchbill"
)

// ErrDuplicateWatch is returned when the same person/day/shift is
// recorded twice for one month.
var ErrDuplicateWatch = fmt.Errorf("watch already recorded")

// Store persists rosters, watchstanders, availability, and the watch log.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Rosters (one per year+month)
	CREATE TABLE IF NOT EXISTS rosters (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		days_off_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		PRIMARY KEY (year, month)
	);

	-- Watchstander directory
	CREATE TABLE IF NOT EXISTS watchstanders (
		name TEXT PRIMARY KEY,
		designated BOOLEAN NOT NULL DEFAULT FALSE,
		role_weight TEXT NOT NULL DEFAULT '1',
		created_at TEXT NOT NULL
	);

	-- One availability vector per person per month, JSON array of 0-9 codes
	CREATE TABLE IF NOT EXISTS availability (
		name TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		vector_json TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (name, year, month)
	);

	CREATE INDEX IF NOT EXISTS idx_availability_month
		ON availability(year, month);

	-- Watch log (append-only; points are derived by replay)
	CREATE TABLE IF NOT EXISTS watch_log (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		day INTEGER NOT NULL,
		shift TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_watch_log_month
		ON watch_log(year, month);

	-- CRITICAL: a person stands a given shift on a given day at most once
	CREATE UNIQUE INDEX IF NOT EXISTS idx_watch_log_unique
		ON watch_log(name, year, month, day, shift);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ROSTER STORE
// =============================================================================

// RosterRecord is one stored roster configuration.
type RosterRecord struct {
	Year      int
	Month     int
	DaysOff   []int
	CreatedAt time.Time
}

// SaveRoster creates or replaces a roster's configuration.
func (s *Store) SaveRoster(ctx context.Context, year, month int, daysOff []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if daysOff == nil {
		daysOff = []int{}
	}
	daysOffJSON, _ := json.Marshal(daysOff)

	query := `
		INSERT INTO rosters (year, month, days_off_json, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(year, month) DO UPDATE SET
			days_off_json = excluded.days_off_json
	`

	_, err := s.db.ExecContext(ctx, query,
		year, month, string(daysOffJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetRoster retrieves a roster configuration, or nil if absent.
func (s *Store) GetRoster(ctx context.Context, year, month int) (*RosterRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r RosterRecord
	var daysOffJSON, createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT year, month, days_off_json, created_at FROM rosters WHERE year = ? AND month = ?",
		year, month,
	).Scan(&r.Year, &r.Month, &daysOffJSON, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(daysOffJSON), &r.DaysOff); err != nil {
		return nil, fmt.Errorf("failed to decode days off: %w", err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

// ListRosters returns all stored roster configurations, newest month first.
func (s *Store) ListRosters(ctx context.Context) ([]RosterRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT year, month, days_off_json, created_at FROM rosters ORDER BY year DESC, month DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rosters []RosterRecord
	for rows.Next() {
		var r RosterRecord
		var daysOffJSON, createdAt string
		if err := rows.Scan(&r.Year, &r.Month, &daysOffJSON, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(daysOffJSON), &r.DaysOff); err != nil {
			return nil, fmt.Errorf("failed to decode days off: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rosters = append(rosters, r)
	}
	return rosters, rows.Err()
}

// =============================================================================
// WATCHSTANDER STORE
// =============================================================================

// WatchstanderRecord is one directory entry.
type WatchstanderRecord struct {
	Name       string
	Designated bool
	RoleWeight string // decimal string, default "1"
	CreatedAt  time.Time
}

// SaveWatchstander creates or updates a directory entry.
func (s *Store) SaveWatchstander(ctx context.Context, w WatchstanderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w.RoleWeight == "" {
		w.RoleWeight = "1"
	}

	query := `
		INSERT INTO watchstanders (name, designated, role_weight, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			designated = excluded.designated,
			role_weight = excluded.role_weight
	`

	_, err := s.db.ExecContext(ctx, query,
		w.Name, w.Designated, w.RoleWeight,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetWatchstander retrieves a directory entry by name, or nil if absent.
func (s *Store) GetWatchstander(ctx context.Context, name string) (*WatchstanderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var w WatchstanderRecord
	var createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT name, designated, role_weight, created_at FROM watchstanders WHERE name = ?",
		name,
	).Scan(&w.Name, &w.Designated, &w.RoleWeight, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &w, nil
}

// ListWatchstanders returns the whole directory ordered by name.
func (s *Store) ListWatchstanders(ctx context.Context) ([]WatchstanderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT name, designated, role_weight, created_at FROM watchstanders ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var watchstanders []WatchstanderRecord
	for rows.Next() {
		var w WatchstanderRecord
		var createdAt string
		if err := rows.Scan(&w.Name, &w.Designated, &w.RoleWeight, &createdAt); err != nil {
			return nil, err
		}
		w.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		watchstanders = append(watchstanders, w)
	}
	return watchstanders, rows.Err()
}

// DeleteWatchstander removes a directory entry. The watch log keeps any
// history already recorded.
func (s *Store) DeleteWatchstander(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM watchstanders WHERE name = ?", name)
	return err
}

// =============================================================================
// AVAILABILITY STORE
// =============================================================================

// AvailabilityRecord is one person's status vector for one month.
type AvailabilityRecord struct {
	Name      string
	Year      int
	Month     int
	Vector    []int
	UpdatedAt time.Time
}

// SetAvailability stores a person's status vector for a month, replacing
// any previous one.
func (s *Store) SetAvailability(ctx context.Context, name string, year, month int, vector []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vectorJSON, _ := json.Marshal(vector)

	query := `
		INSERT INTO availability (name, year, month, vector_json, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name, year, month) DO UPDATE SET
			vector_json = excluded.vector_json,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		name, year, month, string(vectorJSON),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetAvailability retrieves one person's vector for a month, or nil.
func (s *Store) GetAvailability(ctx context.Context, name string, year, month int) (*AvailabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var a AvailabilityRecord
	var vectorJSON, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT name, year, month, vector_json, updated_at FROM availability WHERE name = ? AND year = ? AND month = ?",
		name, year, month,
	).Scan(&a.Name, &a.Year, &a.Month, &vectorJSON, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(vectorJSON), &a.Vector); err != nil {
		return nil, fmt.Errorf("failed to decode availability vector: %w", err)
	}
	a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &a, nil
}

// ListAvailability returns every vector stored for a month, ordered by name.
func (s *Store) ListAvailability(ctx context.Context, year, month int) ([]AvailabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT name, year, month, vector_json, updated_at FROM availability WHERE year = ? AND month = ? ORDER BY name",
		year, month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []AvailabilityRecord
	for rows.Next() {
		var a AvailabilityRecord
		var vectorJSON, updatedAt string
		if err := rows.Scan(&a.Name, &a.Year, &a.Month, &vectorJSON, &updatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(vectorJSON), &a.Vector); err != nil {
			return nil, fmt.Errorf("failed to decode availability vector: %w", err)
		}
		a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		records = append(records, a)
	}
	return records, rows.Err()
}

// =============================================================================
// WATCH LOG (append-only)
// =============================================================================

// WatchRecord is one stood watch in the log.
type WatchRecord struct {
	ID         string
	Name       string
	Year       int
	Month      int
	Day        int
	Shift      string // "day" or "night"
	RecordedAt time.Time
}

// AppendWatch records a stood watch. The log is append-only; recording
// the same person/day/shift twice returns ErrDuplicateWatch.
func (s *Store) AppendWatch(ctx context.Context, name string, year, month, day int, shift watchbill.Shift) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()

	query := `
		INSERT INTO watch_log (id, name, year, month, day, shift, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		id, name, year, month, day, shift.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return "", ErrDuplicateWatch
		}
		return "", fmt.Errorf("failed to append watch: %w", err)
	}

	return id, nil
}

// ListWatches returns a month's watch log in recording order.
func (s *Store) ListWatches(ctx context.Context, year, month int) ([]WatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, year, month, day, shift, recorded_at
		 FROM watch_log WHERE year = ? AND month = ?
		 ORDER BY recorded_at ASC, id ASC`,
		year, month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var watches []WatchRecord
	for rows.Next() {
		var w WatchRecord
		var recordedAt string
		if err := rows.Scan(&w.ID, &w.Name, &w.Year, &w.Month, &w.Day, &w.Shift, &recordedAt); err != nil {
			return nil, err
		}
		w.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		watches = append(watches, w)
	}
	return watches, rows.Err()
}

// =============================================================================
// AGGREGATE LOADING
// =============================================================================

// LoadRoster rebuilds a month's full roster from storage: configuration,
// directory entries with their availability vectors, and the replayed
// watch log. Returns nil if no roster row exists for the month.
func (s *Store) LoadRoster(ctx context.Context, year, month int) (*watchbill.Roster, error) {
	rec, err := s.GetRoster(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	roster, err := watchbill.NewRoster(rec.Year, rec.Month, rec.DaysOff...)
	if err != nil {
		return nil, err
	}

	watchstanders, err := s.ListWatchstanders(ctx)
	if err != nil {
		return nil, err
	}
	vectors, err := s.ListAvailability(ctx, year, month)
	if err != nil {
		return nil, err
	}
	byName := make(map[string][]int, len(vectors))
	for _, v := range vectors {
		byName[v.Name] = v.Vector
	}

	for _, w := range watchstanders {
		p := watchbill.NewPerson(w.Name, w.Designated)
		if weight, err := parseWeight(w.RoleWeight); err == nil {
			p.RoleWeight = weight
		}
		if codes, ok := byName[w.Name]; ok {
			p.Availability = watchbill.FromInts(codes)
		}
		if err := roster.AddPerson(p); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", w.Name, err)
		}
	}

	watches, err := s.ListWatches(ctx, year, month)
	if err != nil {
		return nil, err
	}
	for _, w := range watches {
		shift, err := parseShift(w.Shift)
		if err != nil {
			return nil, err
		}
		// Watches logged for people since removed from the directory are
		// skipped; the log itself keeps them.
		if _, ok := roster.Person(w.Name); !ok {
			continue
		}
		if err := roster.RecordStoodWatch(w.Name, w.Day, shift); err != nil {
			return nil, fmt.Errorf("failed to replay watch %s: %w", w.ID, err)
		}
	}

	return roster, nil
}

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"watch_log", "availability", "watchstanders", "rosters"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func parseWeight(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.NewFromInt(1), nil
	}
	return decimal.NewFromString(s)
}

func parseShift(s string) (watchbill.Shift, error) {
	switch s {
	case "day":
		return watchbill.ShiftDay, nil
	case "night":
		return watchbill.ShiftNight, nil
	default:
		return watchbill.ShiftNone, fmt.Errorf("unknown shift %q", s)
	}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
