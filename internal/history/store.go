// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists completed search runs in a local SQLite
// database so past queries and their results can be reviewed.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-assistant/pkg/types"
)

const defaultMaxRuns = 20

// Run is one recorded search: the extracted parameters, the compiled
// query, and the briefs that were shown.
type Run struct {
	ID       int64
	RanAt    time.Time
	Params   types.SearchParams
	Compiled string
	Briefs   []types.Brief
}

// Store manages the history SQLite database.
type Store struct {
	db      *sql.DB
	maxRuns int
}

// Open opens or creates the history database at cfg.Path, creating the
// schema and any missing parent directories.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxRuns := cfg.MaxRuns
	if maxRuns <= 0 {
		maxRuns = defaultMaxRuns
	}

	s := &Store{db: db, maxRuns: maxRuns}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ran_at TEXT NOT NULL,
			query TEXT NOT NULL,
			compiled TEXT NOT NULL,
			params TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS briefs (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			rank INTEGER NOT NULL,
			record_id TEXT,
			title TEXT,
			creators TEXT,
			creation_date TEXT,
			resource_type TEXT,
			context TEXT,
			permalink TEXT,
			PRIMARY KEY (run_id, rank)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON runs(ran_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one completed run with its briefs in a single
// transaction.
func (s *Store) Record(ctx context.Context, params types.SearchParams, compiled string, briefs []types.Brief) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (ran_at, query, compiled, params) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), params.Query, compiled, string(paramsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO briefs (run_id, rank, record_id, title, creators, creation_date, resource_type, context, permalink)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, b := range briefs {
		creatorsJSON, _ := json.Marshal(b.Creators)
		_, err := stmt.ExecContext(ctx,
			runID, i+1, b.RecordID, b.Title, string(creatorsJSON),
			b.CreationDate, b.ResourceType, b.Context, b.Permalink,
		)
		if err != nil {
			return fmt.Errorf("inserting brief %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// Recent returns the most recent runs, newest first, capped at the
// configured maximum. Briefs are loaded for each run.
func (s *Store) Recent(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ran_at, compiled, params FROM runs ORDER BY id DESC LIMIT ?`, s.maxRuns)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ranAt, paramsJSON string
		if err := rows.Scan(&r.ID, &ranAt, &r.Compiled, &paramsJSON); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ranAt); err == nil {
			r.RanAt = t
		}
		if err := json.Unmarshal([]byte(paramsJSON), &r.Params); err != nil {
			return nil, fmt.Errorf("decoding params for run %d: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	for i := range runs {
		briefs, err := s.runBriefs(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Briefs = briefs
	}
	return runs, nil
}

func (s *Store) runBriefs(ctx context.Context, runID int64) ([]types.Brief, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record_id, title, creators, creation_date, resource_type, context, permalink
		 FROM briefs WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying briefs: %w", err)
	}
	defer rows.Close()

	var briefs []types.Brief
	for rows.Next() {
		var b types.Brief
		var creatorsJSON string
		if err := rows.Scan(&b.RecordID, &b.Title, &creatorsJSON,
			&b.CreationDate, &b.ResourceType, &b.Context, &b.Permalink); err != nil {
			return nil, fmt.Errorf("scanning brief: %w", err)
		}
		if creatorsJSON != "" {
			if err := json.Unmarshal([]byte(creatorsJSON), &b.Creators); err != nil {
				return nil, fmt.Errorf("decoding creators: %w", err)
			}
		}
		briefs = append(briefs, b)
	}
	return briefs, rows.Err()
}
