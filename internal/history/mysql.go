package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"cpr/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cpr_sessions (
		run_id VARCHAR(36) NOT NULL PRIMARY KEY,
		executable VARCHAR(1024) NOT NULL,
		filter_expr VARCHAR(1024) NOT NULL,
		total_runs INT NOT NULL,
		passed_runs INT NOT NULL,
		failed_runs INT NOT NULL,
		jobs INT NOT NULL,
		repeat_count INT NOT NULL,
		duration_seconds DOUBLE NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cpr_runs (
		run_id VARCHAR(36) NOT NULL,
		occurrence INT NOT NULL,
		test_name VARCHAR(1024) NOT NULL,
		tags VARCHAR(1024) NOT NULL,
		exit_code INT NOT NULL,
		passed BOOL NOT NULL,
		duration_seconds DOUBLE NULL,
		PRIMARY KEY (run_id, occurrence)
	)`,
}

// MySQLStore keeps history in a MySQL database
type MySQLStore struct {
	db *sql.DB
}

// NormalizeDSN validates dsn and enables time parsing
func NormalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid history DSN: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	return cfg.FormatDSN(), nil
}

// OpenMySQL connects to dsn and makes sure the history tables exist
func OpenMySQL(ctx context.Context, dsn string) (*MySQLStore, error) {
	normalized, err := NormalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	store := NewMySQLStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewMySQLStore wraps an open database handle
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the history tables if they are missing
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create history tables: %w", err)
		}
	}
	return nil
}

// RecordSession stores the session row and one row per run in a single transaction
func (s *MySQLStore) RecordSession(ctx context.Context, meta domain.TestResultsMeta, runs []domain.RunRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO cpr_sessions (run_id, executable, filter_expr, total_runs, passed_runs, failed_runs, jobs, repeat_count, duration_seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RunID, meta.Executable, meta.Filter, meta.TotalRuns, meta.PassedRuns, meta.FailedRuns,
		meta.Jobs, meta.Repeat, meta.DurationSeconds, sessionTime(meta).UTC())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cpr_runs (run_id, occurrence, test_name, tags, exit_code, passed, duration_seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare run insert: %w", err)
	}
	defer stmt.Close()

	for _, run := range runs {
		if _, err := stmt.ExecContext(ctx, meta.RunID, run.Index, run.Case.Name, run.Case.Tags,
			run.ExitCode, run.Passed, nullDuration(run.Duration)); err != nil {
			return fmt.Errorf("insert run %d: %w", run.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// Close closes the database handle
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

func sessionTime(meta domain.TestResultsMeta) time.Time {
	if t, err := time.Parse(time.RFC3339, meta.Timestamp); err == nil {
		return t
	}
	return time.Now()
}

func nullDuration(d float64) sql.NullFloat64 {
	if d < 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: d, Valid: true}
}
