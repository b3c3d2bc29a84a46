// Package storage keeps a session ledger of finished runs in an in-memory
// SQLite database. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Nothing is written to disk; the ledger lives as long as the
// process.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeWon      Outcome = "won"
	OutcomeGameOver Outcome = "gameover"
	OutcomeAborted  Outcome = "aborted" // Quit or tick limit before the game ended
)

// Store manages the SQLite connection for the run ledger.
type Store struct {
	db *sql.DB
}

// Run is a single finished game.
type Run struct {
	ID        int64
	Layout    string
	Seed      int64
	Score     int
	Outcome   Outcome
	Ticks     uint64
	Bricks    int // Bricks destroyed
	PowerUps  int // Power-ups collected
	CreatedAt time.Time
}

// Stats contains aggregated statistics for one layout.
type Stats struct {
	Layout    string
	Runs      int
	Wins      int
	HighScore int
	AvgScore  float64
	AvgTicks  float64
	LastRun   time.Time
}

// WinRate returns the share of runs that cleared the field.
func (s Stats) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Runs)
}

// Open creates a fresh in-memory ledger and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			layout TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			bricks INTEGER NOT NULL DEFAULT 0,
			powerups INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_layout ON runs(layout);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(layout, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection and discards the ledger.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Layout == "" {
		return 0, errors.New("storage: run has no layout")
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (layout, seed, score, outcome, ticks, bricks, powerups)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Layout, r.Seed, r.Score, string(r.Outcome), int64(r.Ticks), r.Bricks, r.PowerUps, //#nosec G115 -- tick counts fit in int64
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

const runColumns = `id, layout, seed, score, outcome, ticks, bricks, powerups, created_at`

// TopRuns retrieves the best N runs for the given layout.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopRuns(layout string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE layout = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		layout, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs across all layouts.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var outcome string
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Layout, &r.Seed, &r.Score, &outcome, &ticks, &r.Bricks, &r.PowerUps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the highest score for the given layout.
// Returns 0 if no runs exist.
func (s *Store) HighScore(layout string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE layout = ?",
		layout,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics for a specific layout.
func (s *Store) Stats(layout string) (*Stats, error) {
	stats := &Stats{Layout: layout}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(AVG(ticks), 0),
		        MAX(created_at)
		 FROM runs WHERE layout = ?`,
		string(OutcomeWon), layout,
	).Scan(&stats.Runs, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.AvgTicks, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// AllStats retrieves statistics for every layout that has been played.
func (s *Store) AllStats() (map[string]*Stats, error) {
	rows, err := s.db.Query(
		`SELECT layout, COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        MAX(score), AVG(score), AVG(ticks), MAX(created_at)
		 FROM runs
		 GROUP BY layout`,
		string(OutcomeWon),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*Stats)
	for rows.Next() {
		var st Stats
		var lastRun any
		if err := rows.Scan(&st.Layout, &st.Runs, &st.Wins, &st.HighScore, &st.AvgScore, &st.AvgTicks, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.Layout] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Clear deletes all runs.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values.
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
