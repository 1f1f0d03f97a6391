package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store archives completed runs in sqlite. The archive is a write-once
// report log: runs are inserted whole after completion and never updated.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the archive database and applies the schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate archive: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL,
			phase TEXT NOT NULL,
			seq INTEGER NOT NULL,
			account TEXT NOT NULL,
			success INTEGER NOT NULL,
			payload TEXT,
			error TEXT,
			PRIMARY KEY (run_id, phase, seq),
			FOREIGN KEY (run_id) REFERENCES runs(run_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id, phase, seq)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun persists a completed run with all its phase results, atomically.
func (s *Store) SaveRun(ctx context.Context, run *RunReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, finished_at) VALUES (?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC()); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, phase := range run.Phases {
		for i, r := range phase.Results {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO results (run_id, phase, seq, account, success, payload, error)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				run.ID, phase.Phase, i, r.Account, r.Success, r.Payload, r.Err); err != nil {
				return fmt.Errorf("insert result: %w", err)
			}
		}
	}
	return tx.Commit()
}

// RunSummary is one archived run as listed by ListRuns.
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    int
	Failed     int
}

// ListRuns returns the most recent archived runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.run_id, r.started_at, r.finished_at,
		        COUNT(res.run_id), COALESCE(SUM(1 - res.success), 0)
		 FROM runs r
		 LEFT JOIN results res ON res.run_id = r.run_id
		 GROUP BY r.run_id
		 ORDER BY r.started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		if err := rows.Scan(&rs.ID, &rs.StartedAt, &rs.FinishedAt, &rs.Results, &rs.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// RunResults loads every result of one archived run, grouped back into
// phase reports in their original order.
func (s *Store) RunResults(ctx context.Context, runID string) ([]PhaseReport, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT phase, account, success, payload, error
		 FROM results WHERE run_id = ?
		 ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	defer rows.Close()

	var phases []PhaseReport
	for rows.Next() {
		var (
			phase, account, payload, errMsg string
			success                         bool
		)
		if err := rows.Scan(&phase, &account, &success, &payload, &errMsg); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if len(phases) == 0 || phases[len(phases)-1].Phase != phase {
			phases = append(phases, PhaseReport{Phase: phase})
		}
		last := &phases[len(phases)-1]
		last.Results = append(last.Results, Result{
			Account: account,
			Success: success,
			Payload: payload,
			Err:     errMsg,
		})
	}
	return phases, rows.Err()
}
