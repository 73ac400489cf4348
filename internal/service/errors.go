package service

import "errors"

// Client input errors. They are returned before anything is persisted.
var (
	ErrMissingProof         = errors.New("payment proof file is required")
	ErrUnsupportedMediaType = errors.New("payment proof must be a PDF, JPEG, PNG or WebP file")
	ErrPayloadTooLarge      = errors.New("payment proof exceeds the size limit")
	ErrMissingCategory      = errors.New("duo category is required")
)

var (
	// ErrDuplicateProof reports a proof whose bytes match an existing entry.
	// The stored file is kept.
	ErrDuplicateProof = errors.New("this payment proof was already submitted")

	ErrEntryNotFound = errors.New("entry not found")

	// ErrInvalidStatus reports a review target other than accepted or rejected.
	ErrInvalidStatus = errors.New("invalid review status")
)
