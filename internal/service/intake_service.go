package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
	"github.com/mmynk/duoreg/internal/calculator"
	"github.com/mmynk/duoreg/internal/intake"
	"github.com/mmynk/duoreg/internal/metrics"
	"github.com/mmynk/duoreg/internal/models"
	"github.com/mmynk/duoreg/internal/proof"
	"github.com/mmynk/duoreg/internal/storage"
)

// IntakeService turns a posted registration form and its proof file into a
// stored entry.
type IntakeService struct {
	store   storage.Store
	sink    proof.Sink
	fields  intake.FieldMap
	weights calculator.ScoreWeights
	metrics *metrics.Metrics
	maxSize int64
}

// NewIntakeService creates an IntakeService. A non-positive maxSize uses
// proof.DefaultMaxSize.
func NewIntakeService(store storage.Store, sink proof.Sink, fields intake.FieldMap, weights calculator.ScoreWeights, m *metrics.Metrics, maxSize int64) *IntakeService {
	if maxSize <= 0 {
		maxSize = proof.DefaultMaxSize
	}
	return &IntakeService{
		store:   store,
		sink:    sink,
		fields:  fields,
		weights: weights,
		metrics: m,
		maxSize: maxSize,
	}
}

// Fields returns the form field map in use.
func (s *IntakeService) Fields() intake.FieldMap {
	return s.fields
}

// Submit validates and stores one registration and returns the new entry ID.
func (s *IntakeService) Submit(ctx context.Context, fields url.Values, upload *proof.Upload) (string, error) {
	id, err := s.submit(ctx, fields, upload)
	s.metrics.IncSubmission(outcome(err))
	return id, err
}

func (s *IntakeService) submit(ctx context.Context, fields url.Values, upload *proof.Upload) (string, error) {
	if upload == nil || upload.Body == nil {
		return "", ErrMissingProof
	}

	mediaType := proof.NormalizeMediaType(upload.MediaType)
	if !proof.Allowed(mediaType) {
		slog.Info("Proof rejected", "media_type", mediaType, "filename", upload.Filename)
		return "", fmt.Errorf("%w: got %q", ErrUnsupportedMediaType, mediaType)
	}
	if upload.Size > s.maxSize {
		return "", ErrPayloadTooLarge
	}

	entry := s.fields.Apply(fields)
	if entry.Duo.Category == "" {
		return "", ErrMissingCategory
	}

	ext := upload.Extension()
	name := uuid.NewString() + ext
	if _, err := s.sink.Persist(ctx, upload.Body, name); err != nil {
		if errors.Is(err, proof.ErrTooLarge) {
			return "", ErrPayloadTooLarge
		}
		return "", fmt.Errorf("failed to store proof: %w", err)
	}

	fingerprint, err := proof.FingerprintStored(s.sink, name)
	if err != nil {
		return "", err
	}

	existing, err := s.store.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		return "", fmt.Errorf("failed to check for duplicate proof: %w", err)
	}
	if existing != nil {
		slog.Info("Duplicate proof submitted",
			"existing_id", existing.ID,
			"stored_as", name,
			"fingerprint", fingerprint,
		)
		return "", ErrDuplicateProof
	}

	entry.Uniforms = entry.Athlete1.Kit + " / " + entry.Athlete2.Kit
	entry.Proof = models.Proof{
		Filename:    name,
		URL:         s.sink.URL(name),
		Fingerprint: fingerprint,
		MimeType:    mediaType,
	}
	entry.Status = models.StatusPendingReview
	entry.Validation = models.Validation{
		Score:    calculator.Score(scoreInput(&entry), ext, s.weights),
		MimeType: mediaType,
	}

	if err := s.store.CreateEntry(ctx, &entry); err != nil {
		if errors.Is(err, storage.ErrDuplicateFingerprint) {
			slog.Info("Duplicate proof lost creation race", "stored_as", name, "fingerprint", fingerprint)
			return "", ErrDuplicateProof
		}
		return "", fmt.Errorf("failed to create entry: %w", err)
	}

	slog.Info("Entry created",
		"entry_id", entry.ID,
		"category", entry.Duo.Category,
		"score", entry.Validation.Score,
	)
	return entry.ID, nil
}

func scoreInput(e *models.Entry) calculator.ScoreInput {
	return calculator.ScoreInput{
		Athlete1Email: e.Athlete1.Email,
		Athlete2Email: e.Athlete2.Email,
		Athlete1Kit:   e.Athlete1.Kit,
		Athlete2Kit:   e.Athlete2.Kit,
		DuoName:       e.Duo.Name,
		DuoCategory:   e.Duo.Category,
		Instagram:     e.Duo.Instagram,
		Consent:       e.Consent,
	}
}

// outcome is the submissions metric label of a Submit result.
func outcome(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, ErrDuplicateProof):
		return "duplicate"
	case errors.Is(err, ErrMissingProof),
		errors.Is(err, ErrUnsupportedMediaType),
		errors.Is(err, ErrPayloadTooLarge),
		errors.Is(err, ErrMissingCategory):
		return "invalid"
	default:
		return "error"
	}
}
