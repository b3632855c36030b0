package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/credscan/internal/model"
)

// ResultDB provides SQLite-based storage for analysis reports.
// It manages connection pooling and provides methods for saving and
// querying runs.
//
// Design decision: We use a single database file for all dumps rather
// than one file per dump. This lets history queries compare runs across
// sources and simplifies backup/restore operations.
type ResultDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ResultDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ResultDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created. If CreateIfNotExists is false and the database doesn't
// exist, an error is returned.
func Open(dbDir string, opts Options) (*ResultDB, error) {
	dbPath := filepath.Join(dbDir, "credscan.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// modernc.org/sqlite uses mode=rw to prevent creating new files,
	// mode=rwc to allow creation.
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

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &ResultDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *ResultDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *ResultDB) createTables() error {
	schema := `
	-- Analysis runs store one row per analyzed dump file
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_records INTEGER DEFAULT 0,
		report_json TEXT NOT NULL,
		relation_summary TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_source ON analysis_runs(source);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON analysis_runs(timestamp);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport stores a completed analysis run.
// The full report is serialized as JSON; the relation summary is
// duplicated in its own column so history queries can read counts
// without deserializing the whole report.
func (rdb *ResultDB) SaveReport(ctx context.Context, report *model.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	var summaryJSON []byte
	if report.Relations != nil {
		summaryJSON, err = json.Marshal(report.Relations)
		if err != nil {
			return fmt.Errorf("failed to serialize relation summary: %w", err)
		}
	}

	query := `
	INSERT INTO analysis_runs (run_id, source, total_records, report_json, relation_summary)
	VALUES (?, ?, ?, ?, ?)
	`

	_, err = rdb.db.ExecContext(ctx, query,
		report.RunID,
		report.Source,
		report.TotalRecords,
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// GetLatestReport retrieves the most recent report for a dump source.
// Returns nil without error when no run exists for the source.
func (rdb *ResultDB) GetLatestReport(ctx context.Context, source string) (*model.Report, error) {
	query := `
	SELECT report_json FROM analysis_runs
	WHERE source = ?
	ORDER BY timestamp DESC
	LIMIT 1
	`

	var reportJSON string
	err := rdb.db.QueryRowContext(ctx, query, source).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListSources returns the distinct dump sources with at least one run.
func (rdb *ResultDB) ListSources(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT source FROM analysis_runs
	ORDER BY source
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// RunMetadata describes one stored analysis run without the full report
// payload. History listings use this to stay cheap.
type RunMetadata struct {
	// ID is the database row ID.
	ID int64 `json:"id"`

	// RunID uniquely identifies the analysis run.
	RunID string `json:"run_id"`

	// Source is the analyzed dump.
	Source string `json:"source"`

	// Timestamp is when the run was stored.
	Timestamp time.Time `json:"timestamp"`

	// TotalRecords is the number of records in the run.
	TotalRecords int `json:"total_records"`

	// Related and NoRelation are the correlation tallies, taken from
	// the stored relation summary.
	Related    int `json:"related"`
	NoRelation int `json:"no_relation"`
}

// GetRunHistory retrieves run metadata for a dump source, newest first.
// A limit of 0 means no limit.
func (rdb *ResultDB) GetRunHistory(ctx context.Context, source string, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, run_id, source, timestamp, total_records, relation_summary
	FROM analysis_runs
	WHERE source = ?
	ORDER BY timestamp DESC
	`
	args := []any{source}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	var history []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp string
		var summaryJSON sql.NullString
		if err := rows.Scan(&meta.ID, &meta.RunID, &meta.Source, &timestamp, &meta.TotalRecords, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run metadata: %w", err)
		}
		meta.Timestamp = parseTimestamp(timestamp)

		if summaryJSON.Valid && summaryJSON.String != "" {
			var summary model.RelationSummary
			if err := json.Unmarshal([]byte(summaryJSON.String), &summary); err == nil {
				meta.Related = summary.Related
				meta.NoRelation = summary.NoRelation
			}
		}

		history = append(history, meta)
	}

	return history, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending
// on configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
