package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gazecat/internal/config"
	"gazecat/internal/recording"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.CatalogPath())
}

// OpenPath opens the catalog database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
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
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

const entryColumns = "id, path, format, label, size_bytes, recorded_at, first_seen_at, scanned_at"

// Upsert records a classified recording. The path is the natural key: a new
// path gets a fresh id and first-seen timestamp, a known path keeps both and
// updates everything else.
func (s *Store) Upsert(ctx context.Context, entry Entry) (*Entry, error) {
	if entry.Path == "" {
		return nil, errors.New("entry path must be set")
	}
	now := time.Now().UTC()
	scannedAt := entry.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = now
	}

	existing, err := s.GetByPath(ctx, entry.Path)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		id := entry.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO recordings (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			entry.Path,
			string(entry.Format),
			entry.Label,
			entry.SizeBytes,
			nullableTime(entry.RecordedAt),
			now.Format(time.RFC3339Nano),
			scannedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return nil, fmt.Errorf("insert recording: %w", err)
		}
		return s.GetByPath(ctx, entry.Path)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE recordings SET format = ?, label = ?, size_bytes = ?, recorded_at = ?, scanned_at = ? WHERE path = ?`,
		string(entry.Format),
		entry.Label,
		entry.SizeBytes,
		nullableTime(entry.RecordedAt),
		scannedAt.Format(time.RFC3339Nano),
		entry.Path,
	)
	if err != nil {
		return nil, fmt.Errorf("update recording: %w", err)
	}
	return s.GetByPath(ctx, entry.Path)
}

// GetByPath fetches a catalog entry by its directory path. A missing entry
// returns nil without error.
func (s *Store) GetByPath(ctx context.Context, path string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM recordings WHERE path = ?`, path)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recording: %w", err)
	}
	return entry, nil
}

// List returns all catalog entries ordered by path.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM recordings ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recording: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recordings: %w", err)
	}
	return entries, nil
}

// Remove deletes the entry for path and reports whether a row existed.
func (s *Store) Remove(ctx context.Context, path string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recordings WHERE path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("remove recording: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats aggregates catalog contents by format.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByFormat: make(map[recording.Type]int)}

	rows, err := s.db.QueryContext(ctx,
		`SELECT format, COUNT(1), COALESCE(SUM(size_bytes), 0) FROM recordings GROUP BY format`)
	if err != nil {
		return Stats{}, fmt.Errorf("stats query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var format string
		var count int
		var bytes int64
		if err := rows.Scan(&format, &count, &bytes); err != nil {
			return Stats{}, fmt.Errorf("scan stats: %w", err)
		}
		parsed, err := recording.ParseType(format)
		if err != nil {
			return Stats{}, fmt.Errorf("stats: %w", err)
		}
		stats.ByFormat[parsed] = count
		stats.Total += count
		stats.TotalBytes += bytes
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id          string
		path        string
		format      string
		label       string
		sizeBytes   int64
		recordedRaw sql.NullString
		firstSeen   string
		scannedAt   string
	)

	if err := scanner.Scan(&id, &path, &format, &label, &sizeBytes, &recordedRaw, &firstSeen, &scannedAt); err != nil {
		return nil, err
	}

	parsedFormat, err := recording.ParseType(format)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:        id,
		Path:      path,
		Format:    parsedFormat,
		Label:     label,
		SizeBytes: sizeBytes,
	}
	if entry.FirstSeenAt, err = parseTimestamp(firstSeen); err != nil {
		return nil, err
	}
	if entry.ScannedAt, err = parseTimestamp(scannedAt); err != nil {
		return nil, err
	}
	if recordedRaw.Valid && recordedRaw.String != "" {
		recorded, err := parseTimestamp(recordedRaw.String)
		if err != nil {
			return nil, err
		}
		entry.RecordedAt = &recorded
	}
	return entry, nil
}

func parseTimestamp(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return parsed, nil
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}
