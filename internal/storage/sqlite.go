// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID         int64     `json:"id"`
	Player     string    `json:"player"`
	Seed       int64     `json:"seed"`
	Difficulty string    `json:"difficulty"`
	Loops      int       `json:"loops"`
	Distance   float64   `json:"distance"`
	Ghosts     int       `json:"ghosts"`
	MaxSpeed   float64   `json:"maxSpeed"`
	Duration   float64   `json:"duration"` // Simulated seconds
	CreatedAt  time.Time `json:"createdAt"`
}

// RunOrder selects the ranking used by TopRuns.
type RunOrder int

const (
	ByLoops RunOrder = iota
	ByDistance
)

// String returns the ranking name.
func (o RunOrder) String() string {
	if o == ByDistance {
		return "distance"
	}
	return "loops"
}

// ParseRunOrder maps "distance" to ByDistance and anything else to ByLoops.
func ParseRunOrder(s string) RunOrder {
	if s == "distance" {
		return ByDistance
	}
	return ByLoops
}

func (o RunOrder) clause() string {
	if o == ByDistance {
		return "distance DESC, loops DESC"
	}
	return "loops DESC, distance DESC"
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT '',
			loops INTEGER NOT NULL,
			distance REAL NOT NULL,
			ghosts INTEGER NOT NULL DEFAULT 0,
			max_speed REAL NOT NULL DEFAULT 1,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_loops ON runs(loops DESC, distance DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_distance ON runs(distance DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns the ID of the inserted row.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (player, seed, difficulty, loops, distance, ghosts, max_speed, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Seed, r.Difficulty, r.Loops, r.Distance, r.Ghosts, r.MaxSpeed, r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best runs under the given ranking.
func (s *Store) TopRuns(order RunOrder, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, seed, difficulty, loops, distance, ghosts, max_speed, duration_secs, created_at
		 FROM runs
		 ORDER BY `+order.clause()+`
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the run with the most loops, or nil when none exist.
func (s *Store) BestRun() (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, player, seed, difficulty, loops, distance, ghosts, max_speed, duration_secs, created_at
		 FROM runs
		 ORDER BY ` + ByLoops.clause() + `
		 LIMIT 1`,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ClearRuns deletes every recorded run.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics over all runs.
type RunStats struct {
	Runs          int       `json:"runs"`
	BestLoops     int       `json:"bestLoops"`
	BestDistance  float64   `json:"bestDistance"`
	AvgLoops      float64   `json:"avgLoops"`
	TotalDistance float64   `json:"totalDistance"`
	LastPlayed    time.Time `json:"lastPlayed"`
}

// Stats retrieves aggregated statistics over all runs.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(loops), 0), COALESCE(MAX(distance), 0),
		        COALESCE(AVG(loops), 0), COALESCE(SUM(distance), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestLoops, &stats.BestDistance, &stats.AvgLoops, &stats.TotalDistance, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var r RunRecord
	var createdAt any
	err := sc.Scan(&r.ID, &r.Player, &r.Seed, &r.Difficulty, &r.Loops, &r.Distance,
		&r.Ghosts, &r.MaxSpeed, &r.Duration, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
