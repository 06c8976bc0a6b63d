package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// VisitDB provides SQLite-based storage for crawl runs and visited URLs.
// It manages connection pooling and offers CRUD methods for run history.
//
// Design decision: One database file for all crawls rather than a file
// per seed. Cross-run queries ("what runs touched this host") become a
// single WHERE clause, and there is only one file to back up.
type VisitDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures VisitDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a VisitDB at the specified directory.
// If CreateIfNotExists is false and the database doesn't exist, an
// error is returned instead of silently creating an empty history.
func Open(dbDir string, opts Options) (*VisitDB, error) {
	dbPath := filepath.Join(dbDir, "linktrail.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; don't pretend otherwise.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	vdb := &VisitDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := vdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return vdb, nil
}

// Close closes the database connection.
func (vdb *VisitDB) Close() error {
	return vdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (vdb *VisitDB) createTables() error {
	schema := `
	-- One row per crawl run (one seed, one frontier, one budget)
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed TEXT NOT NULL,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		finished_at DATETIME,
		pages_visited INTEGER DEFAULT 0,
		pages_failed INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- One row per visited URL within a run
	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		url TEXT NOT NULL,
		ok INTEGER NOT NULL DEFAULT 1,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_visits_run ON visits(run_id);
	CREATE INDEX IF NOT EXISTS idx_visits_url ON visits(url);
	`

	_, err := vdb.db.ExecContext(context.Background(), schema)
	return err
}

// BeginRun records the start of a crawl run and returns its ID.
func (vdb *VisitDB) BeginRun(ctx context.Context, seed string) (int64, error) {
	result, err := vdb.db.ExecContext(ctx,
		`INSERT INTO runs (seed) VALUES (?)`, seed)
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}
	return result.LastInsertId()
}

// RecordVisit stores one visited URL for the given run.
func (vdb *VisitDB) RecordVisit(ctx context.Context, runID int64, url string, ok bool) error {
	okInt := 0
	if ok {
		okInt = 1
	}
	_, err := vdb.db.ExecContext(ctx,
		`INSERT INTO visits (run_id, url, ok) VALUES (?, ?, ?)`,
		runID, url, okInt)
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// FinishRun closes out a run with its final counters.
func (vdb *VisitDB) FinishRun(ctx context.Context, runID int64, visited, failed int) error {
	_, err := vdb.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = CURRENT_TIMESTAMP, pages_visited = ?, pages_failed = ? WHERE id = ?`,
		visited, failed, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RunRecord summarizes one stored crawl run.
type RunRecord struct {
	// ID is the run's database identifier.
	ID int64

	// Seed is the URL the run started from.
	Seed string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended; zero if the run never finished.
	FinishedAt time.Time

	// PagesVisited is the final visited count.
	PagesVisited int

	// PagesFailed is the final failed count.
	PagesFailed int
}

// ListRuns returns stored runs, newest first. When hostFilter is
// non-empty, only runs whose seed contains it are returned.
func (vdb *VisitDB) ListRuns(ctx context.Context, hostFilter string) ([]RunRecord, error) {
	query := `
	SELECT id, seed, started_at, finished_at, pages_visited, pages_failed
	FROM runs
	`
	args := make([]any, 0, 1)
	if hostFilter != "" {
		query += ` WHERE seed LIKE ?`
		args = append(args, "%"+hostFilter+"%")
	}
	query += ` ORDER BY started_at DESC, id DESC`

	rows, err := vdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started string
		var finished sql.NullString

		if err := rows.Scan(&rec.ID, &rec.Seed, &started, &finished, &rec.PagesVisited, &rec.PagesFailed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		rec.StartedAt = parseTimestamp(started)
		if finished.Valid {
			rec.FinishedAt = parseTimestamp(finished.String)
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// RunVisits returns the URLs visited during a run, in insertion order.
func (vdb *VisitDB) RunVisits(ctx context.Context, runID int64) ([]string, error) {
	rows, err := vdb.db.QueryContext(ctx,
		`SELECT url FROM visits WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}

// RunRecorder adapts one run into the crawler's VisitRecorder hook.
func (vdb *VisitDB) RunRecorder(runID int64) *RunRecorder {
	return &RunRecorder{db: vdb, runID: runID}
}

// RunRecorder records visits for a single run.
type RunRecorder struct {
	db    *VisitDB
	runID int64
}

// RecordVisit stores one visited URL for the recorder's run.
func (r *RunRecorder) RecordVisit(ctx context.Context, url string, ok bool) error {
	return r.db.RecordVisit(ctx, r.runID, url, ok)
}

// timestampFormats contains the timestamp formats SQLite may return.
// More specific formats come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats, since SQLite returns different shapes depending on how the
// value was written. Returns zero time if nothing matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
