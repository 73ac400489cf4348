// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/duoreg/internal/models"
)

var (
	// ErrNotFound is returned when no entry has the requested ID.
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicateFingerprint is returned by CreateEntry when another entry
	// already holds the same proof fingerprint. Stores must enforce this
	// with a uniqueness constraint, not a prior read.
	ErrDuplicateFingerprint = errors.New("proof fingerprint already registered")
)

// Filter narrows ListEntries. Empty fields match everything.
type Filter struct {
	Category string
	Status   models.Status
}

// Store defines the interface for entry storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateEntry persists a new entry. ID and SubmittedAt are populated by
	// the store when empty.
	CreateEntry(ctx context.Context, entry *models.Entry) error

	// GetEntry retrieves an entry by ID, or ErrNotFound.
	GetEntry(ctx context.Context, id string) (*models.Entry, error)

	// FindByFingerprint returns the entry holding a proof fingerprint,
	// or nil and no error if there is none.
	FindByFingerprint(ctx context.Context, fingerprint string) (*models.Entry, error)

	// UpdateStatus sets the review status, or returns ErrNotFound.
	UpdateStatus(ctx context.Context, id string, status models.Status) error

	// ListEntries returns matching entries, newest first.
	ListEntries(ctx context.Context, filter Filter) ([]*models.Entry, error)

	// ListCategories returns the distinct categories, sorted.
	ListCategories(ctx context.Context) ([]string, error)

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
