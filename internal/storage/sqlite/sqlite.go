// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlitedrv "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/duoreg/internal/models"
	"github.com/mmynk/duoreg/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single connection serializes writes instead
	// of surfacing SQLITE_BUSY under concurrent submissions.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateEntry persists a new entry to the database.
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.SubmittedAt.IsZero() {
		entry.SubmittedAt = time.Now()
	}

	query := "INSERT INTO entries (" + storage.EntryColumns + ") VALUES (?" +
		strings.Repeat(", ?", storage.EntryColumnCount-1) + ")"

	_, err := s.db.ExecContext(ctx, query, storage.EntryValues(entry)...)
	if isUniqueViolation(err) {
		return storage.ErrDuplicateFingerprint
	}
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	return nil
}

// GetEntry retrieves an entry by ID.
func (s *SQLiteStore) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+storage.EntryColumns+" FROM entries WHERE id = ?", id)

	entry, err := storage.ScanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// FindByFingerprint retrieves the entry holding a proof fingerprint.
func (s *SQLiteStore) FindByFingerprint(ctx context.Context, fingerprint string) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+storage.EntryColumns+" FROM entries WHERE proof_fingerprint = ?", fingerprint)

	entry, err := storage.ScanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // No entry with this proof
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry by fingerprint: %w", err)
	}
	return entry, nil
}

// UpdateStatus sets the review status of an entry.
func (s *SQLiteStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE entries SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListEntries returns entries matching the filter, newest first.
func (s *SQLiteStore) ListEntries(ctx context.Context, filter storage.Filter) ([]*models.Entry, error) {
	query := "SELECT " + storage.EntryColumns + " FROM entries"
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		where = append(where, "duo_category = ?")
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY submitted_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.Entry
	for rows.Next() {
		entry, err := storage.ScanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// ListCategories returns the distinct categories, sorted.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT duo_category FROM entries ORDER BY duo_category")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedrv.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
