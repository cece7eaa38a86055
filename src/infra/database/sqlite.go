package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/contre95/rattlesnake/src/music"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteStore is a SQLite implementation of the music.ValidationStore interface.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens the validation history database, creating it if needed.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SqliteStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			recursive BOOLEAN NOT NULL,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			path TEXT NOT NULL,
			file_type TEXT NOT NULL,
			missing_album_art BOOLEAN NOT NULL,
			missing_album BOOLEAN NOT NULL,
			missing_artist BOOLEAN NOT NULL,
			missing_track_number BOOLEAN NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (run_id) REFERENCES runs(id)
		);

		CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
	`)
	return err
}

// SaveRun stores a run together with its per-file results.
func (d *SqliteStore) SaveRun(ctx context.Context, run *music.ScanRun) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, root, recursive, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Root, run.Recursive, run.StartedAt.Format(time.RFC3339), run.Duration.Milliseconds())
	if err != nil {
		return err
	}

	for _, result := range run.Results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO results (run_id, path, file_type, missing_album_art, missing_album,
				missing_artist, missing_track_number, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, result.Path, string(result.Type), result.MissingAlbumArt, result.MissingAlbum,
			result.MissingArtist, result.MissingTrackNumber, result.Error)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRun fetches a single run with its results. A short ID prefix is accepted
// as long as it matches exactly one stored run.
func (d *SqliteStore) GetRun(ctx context.Context, id string) (*music.ScanRun, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, root, recursive, started_at, duration_ms
		FROM runs WHERE id LIKE ? ORDER BY started_at DESC LIMIT 2
	`, id+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*music.ScanRun
	for rows.Next() {
		run, err := scanRunRow(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", music.ErrRunNotFound, id)
	case 1:
	default:
		return nil, fmt.Errorf("run ID prefix %q is ambiguous", id)
	}
	run := matches[0]

	resultRows, err := d.db.QueryContext(ctx, `
		SELECT path, file_type, missing_album_art, missing_album, missing_artist,
			missing_track_number, error
		FROM results WHERE run_id = ? ORDER BY id
	`, run.ID)
	if err != nil {
		return nil, err
	}
	defer resultRows.Close()

	for resultRows.Next() {
		var result music.ValidationResult
		var fileType string
		if err := resultRows.Scan(&result.Path, &fileType, &result.MissingAlbumArt,
			&result.MissingAlbum, &result.MissingArtist, &result.MissingTrackNumber,
			&result.Error); err != nil {
			return nil, err
		}
		result.Type = music.FileType(fileType)
		run.Results = append(run.Results, result)
	}
	if err := resultRows.Err(); err != nil {
		return nil, err
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first, without their results.
func (d *SqliteStore) ListRuns(ctx context.Context, limit int) ([]*music.ScanRun, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, root, recursive, started_at, duration_ms
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*music.ScanRun
	for rows.Next() {
		run, err := scanRunRow(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunStats returns the per-run file counts without loading every result.
func (d *SqliteStore) RunStats(ctx context.Context, id string) (total, issues, errored int, err error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(missing_album_art OR missing_album OR missing_artist OR missing_track_number), 0),
			COALESCE(SUM(error != ''), 0)
		FROM results WHERE run_id = ?
	`, id)
	if err := row.Scan(&total, &issues, &errored); err != nil {
		return 0, 0, 0, err
	}
	return total, issues, errored, nil
}

// Close releases the database handle.
func (d *SqliteStore) Close() error {
	return d.db.Close()
}

func scanRunRow(rows *sql.Rows) (*music.ScanRun, error) {
	var run music.ScanRun
	var startedAt string
	var durationMS int64
	if err := rows.Scan(&run.ID, &run.Root, &run.Recursive, &startedAt, &durationMS); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid started_at for run %s: %w", run.ID, err)
	}
	run.StartedAt = parsed
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}
