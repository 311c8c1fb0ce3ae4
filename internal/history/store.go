package history

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

	"github.com/nao1215/cachebust/internal/model"
)

// DBFileName is the name of the database file inside the history directory.
const DBFileName = "cachebust.db"

// ErrRunNotFound is returned by Get when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// Store provides access to the recorded runs.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Run is the metadata of one recorded run.
type Run struct {
	ID        int64     `json:"id"`
	File      string    `json:"file"`
	Version   string    `json:"version"`
	Source    string    `json:"source"`
	Versioned int       `json:"versioned"`
	Replaced  int       `json:"replaced"`
	Skipped   int       `json:"skipped"`
	Timestamp time.Time `json:"timestamp"`
}

// Open opens or creates the history database inside dir.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file TEXT NOT NULL,
		version TEXT NOT NULL,
		source TEXT NOT NULL,
		versioned INTEGER NOT NULL DEFAULT 0,
		replaced INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		timestamp TEXT NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_file ON runs(file);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Record stores a run and returns its ID.
// The file path is stored as given; callers should pass an absolute path so
// runs from different working directories refer to the same document.
func (s *Store) Record(ctx context.Context, result *model.Result) (int64, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize result: %w", err)
	}

	ts := result.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
	INSERT INTO runs (file, version, source, versioned, replaced, skipped, timestamp, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		result.File,
		result.Version,
		result.Source,
		result.Versioned,
		result.Replaced,
		result.Skipped,
		ts.UTC().Format(timestampLayout),
		string(resultJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	return res.LastInsertId()
}

// List returns recorded runs, newest first.
// An empty file returns runs for every document. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, file string, limit int) ([]Run, error) {
	query := `
	SELECT id, file, version, source, versioned, replaced, skipped, timestamp
	FROM runs
	WHERE 1=1
	`
	args := make([]any, 0, 2)

	if file != "" {
		query += " AND file = ?"
		args = append(args, file)
	}
	query += " ORDER BY timestamp DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var run Run
		var timestamp string
		if err := rows.Scan(
			&run.ID,
			&run.File,
			&run.Version,
			&run.Source,
			&run.Versioned,
			&run.Replaced,
			&run.Skipped,
			&timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Timestamp = parseTimestamp(timestamp)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Latest returns the most recent run for file, or ErrRunNotFound.
func (s *Store) Latest(ctx context.Context, file string) (*Run, error) {
	runs, err := s.List(ctx, file, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[0], nil
}

// Get returns the full recorded result of the run with the given ID.
func (s *Store) Get(ctx context.Context, id int64) (*model.Result, error) {
	var resultJSON string
	err := s.db.QueryRowContext(ctx, "SELECT result_json FROM runs WHERE id = ?", id).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var result model.Result
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse run %d: %w", id, err)
	}
	return &result, nil
}

// timestampLayout is the layout runs are stored with. Sub-second precision
// keeps runs recorded within the same second in order.
const timestampLayout = "2006-01-02 15:04:05.000000"

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// parseTimestamp parses a SQLite timestamp string, returning the zero time
// when no known format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
