package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"capsync/internal/config"
)

// Run records one pipeline execution and its results.
type Run struct {
	ID             string
	CreatedAt      time.Time
	InputPath      string
	Language       string
	Mode           string
	WordCount      int
	ChunkCount     int
	Repaired       bool
	DriftPattern   string
	DriftSeverity  string
	DriftCorrected bool
	StatsJSON      string
	WordsJSON      string
	OutputJSON     string
}

// Modes distinguish which segmentation produced the run output.
const (
	ModeChunks = "chunks"
	ModePages  = "pages"
)

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the run database and verifies the schema.
// A file lock next to the database guards against concurrent writers.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.Store.Path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("store %s is locked by another capsync process", cfg.Store.Path)
	}

	db, err := sql.Open("sqlite", cfg.Store.Path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: cfg.Store.Path, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the writer lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// SaveRun inserts a run record, assigning an ID and timestamp when absent,
// and returns the stored run.
func (s *Store) SaveRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, created_at, input_path, language, mode, word_count, chunk_count,
            repaired, drift_pattern, drift_severity, drift_corrected,
            stats_json, words_json, output_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.InputPath,
		run.Language,
		run.Mode,
		run.WordCount,
		run.ChunkCount,
		boolToInt(run.Repaired),
		nullableString(run.DriftPattern),
		nullableString(run.DriftSeverity),
		boolToInt(run.DriftCorrected),
		nullableString(run.StatsJSON),
		nullableString(run.WordsJSON),
		nullableString(run.OutputJSON),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// GetRun fetches a run by identifier. A missing run returns nil.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs ordered most recent first. A non-positive limit
// returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Prune deletes runs created before the cutoff and reports how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM runs WHERE created_at < ?`,
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

// Clear removes all runs.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

const runColumns = "id, created_at, input_path, language, mode, word_count, chunk_count, repaired, drift_pattern, drift_severity, drift_corrected, stats_json, words_json, output_json"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		id             string
		createdRaw     string
		inputPath      string
		lang           string
		mode           string
		wordCount      int
		chunkCount     int
		repaired       int
		driftPattern   sql.NullString
		driftSeverity  sql.NullString
		driftCorrected int
		statsJSON      sql.NullString
		wordsJSON      sql.NullString
		outputJSON     sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&createdRaw,
		&inputPath,
		&lang,
		&mode,
		&wordCount,
		&chunkCount,
		&repaired,
		&driftPattern,
		&driftSeverity,
		&driftCorrected,
		&statsJSON,
		&wordsJSON,
		&outputJSON,
	); err != nil {
		return nil, err
	}

	run := &Run{
		ID:             id,
		InputPath:      inputPath,
		Language:       lang,
		Mode:           mode,
		WordCount:      wordCount,
		ChunkCount:     chunkCount,
		Repaired:       repaired != 0,
		DriftPattern:   driftPattern.String,
		DriftSeverity:  driftSeverity.String,
		DriftCorrected: driftCorrected != 0,
		StatsJSON:      statsJSON.String,
		WordsJSON:      wordsJSON.String,
		OutputJSON:     outputJSON.String,
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		run.CreatedAt = created
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
