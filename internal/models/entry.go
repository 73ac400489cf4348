package models

import (
	"fmt"
	"time"
)

// Status is the review state of an Entry.
type Status string

const (
	StatusPendingReview Status = "pending_review"
	StatusAccepted      Status = "accepted"
	StatusRejected      Status = "rejected"
	// StatusDuplicate is reserved for rows imported from older data;
	// the intake pipeline rejects duplicates instead of storing them.
	StatusDuplicate Status = "duplicate"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPendingReview, StatusAccepted, StatusRejected, StatusDuplicate:
		return st, nil
	}
	return "", fmt.Errorf("unknown status: %q", s)
}

// Terminal reports whether a review decision has been made.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Entry represents one duo registration submission.
type Entry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	// SubmittedAt is set once by the store on creation.
	SubmittedAt time.Time

	Athlete1 Athlete
	Athlete2 Athlete

	Duo Duo

	// Consent is true when the terms were accepted on the form.
	Consent bool

	// Uniforms is the legacy combined "<kit1> / <kit2>" string. It is still
	// written for new entries so older readers keep working.
	Uniforms string

	Proof Proof

	Status Status

	Validation Validation
}

// Athlete holds the free-form details of one athlete. All fields are optional.
type Athlete struct {
	Name  string
	Phone string
	Email string
	City  string
	// Kit is the raw uniform size/gender selection, e.g. "M Masculino".
	Kit string
}

// Duo holds team metadata.
type Duo struct {
	// Name is optional.
	Name string

	// Category is required and never empty once persisted.
	Category string

	// Instagram is an optional handle.
	Instagram string
}

// Proof describes the stored payment proof.
type Proof struct {
	// Filename is the generated storage name, including the extension.
	Filename string

	// URL is the public path the file is served from.
	URL string

	// Fingerprint is the hex SHA-256 of the stored bytes. Unique across entries.
	Fingerprint string

	// MimeType is the media type declared by the uploader.
	MimeType string
}

// Validation is the review-assist block computed at intake.
type Validation struct {
	// Correct is reserved and not computed; nil means unset.
	Correct *bool

	// Score is the completeness score in [0, 100]. It is a heuristic for
	// ordering manual review, not a correctness check.
	Score int

	MimeType string

	// TextSample is reserved for extracted text; always empty for now.
	TextSample string
}
