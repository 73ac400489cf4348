// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Store interface using the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/mmynk/duoreg/internal/models"
	"github.com/mmynk/duoreg/internal/storage"
)

var _ storage.Store = (*PostgresStore)(nil)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id TEXT PRIMARY KEY,
    submitted_at BIGINT NOT NULL,

    athlete1_name TEXT NOT NULL DEFAULT '',
    athlete1_phone TEXT NOT NULL DEFAULT '',
    athlete1_email TEXT NOT NULL DEFAULT '',
    athlete1_city TEXT NOT NULL DEFAULT '',
    athlete1_kit TEXT NOT NULL DEFAULT '',

    athlete2_name TEXT NOT NULL DEFAULT '',
    athlete2_phone TEXT NOT NULL DEFAULT '',
    athlete2_email TEXT NOT NULL DEFAULT '',
    athlete2_city TEXT NOT NULL DEFAULT '',
    athlete2_kit TEXT NOT NULL DEFAULT '',

    duo_name TEXT NOT NULL DEFAULT '',
    duo_category TEXT NOT NULL CHECK (duo_category <> ''),
    duo_instagram TEXT NOT NULL DEFAULT '',

    consent BOOLEAN NOT NULL DEFAULT FALSE,
    uniforms TEXT NOT NULL DEFAULT '',

    proof_filename TEXT NOT NULL,
    proof_url TEXT NOT NULL,
    proof_fingerprint TEXT NOT NULL,
    proof_mime TEXT NOT NULL,

    status TEXT NOT NULL,

    validation_correct BOOLEAN,
    validation_score INTEGER NOT NULL CHECK (validation_score BETWEEN 0 AND 100),
    validation_mime TEXT NOT NULL DEFAULT '',
    validation_text_sample TEXT NOT NULL DEFAULT '',

    CONSTRAINT entries_proof_fingerprint_key UNIQUE (proof_fingerprint)
);

CREATE INDEX IF NOT EXISTS idx_entries_submitted_at ON entries(submitted_at DESC);
CREATE INDEX IF NOT EXISTS idx_entries_category_status ON entries(duo_category, status);
`

// PostgresStore implements storage.Store on PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// Open connects to dsn, checks the connection and runs migrations.
func Open(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := New(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing connection pool. Call Migrate before use on a fresh database.
func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the schema if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateEntry persists a new entry.
func (s *PostgresStore) CreateEntry(ctx context.Context, entry *models.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.SubmittedAt.IsZero() {
		entry.SubmittedAt = time.Now()
	}

	query := "INSERT INTO entries (" + storage.EntryColumns + ") VALUES (" +
		placeholders(1, storage.EntryColumnCount) + ")"

	_, err := s.db.ExecContext(ctx, query, storage.EntryValues(entry)...)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "entries_proof_fingerprint_key" {
		return storage.ErrDuplicateFingerprint
	}
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

// GetEntry retrieves an entry by ID.
func (s *PostgresStore) GetEntry(ctx context.Context, id string) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+storage.EntryColumns+" FROM entries WHERE id = $1", id)

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
func (s *PostgresStore) FindByFingerprint(ctx context.Context, fingerprint string) (*models.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+storage.EntryColumns+" FROM entries WHERE proof_fingerprint = $1", fingerprint)

	entry, err := storage.ScanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry by fingerprint: %w", err)
	}
	return entry, nil
}

// UpdateStatus sets the review status of an entry.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE entries SET status = $1 WHERE id = $2", string(status), id)
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
func (s *PostgresStore) ListEntries(ctx context.Context, filter storage.Filter) ([]*models.Entry, error) {
	query := "SELECT " + storage.EntryColumns + " FROM entries"
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, "duo_category = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
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
func (s *PostgresStore) ListCategories(ctx context.Context) ([]string, error) {
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

// placeholders returns "$from, $from+1, ..." for n parameters.
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(from+i)
	}
	return strings.Join(parts, ", ")
}
