package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/duoreg/internal/calculator"
	"github.com/mmynk/duoreg/internal/metrics"
	"github.com/mmynk/duoreg/internal/models"
	"github.com/mmynk/duoreg/internal/notify"
	"github.com/mmynk/duoreg/internal/storage"
	adminv1 "github.com/mmynk/duoreg/pkg/adminv1"
)

// ReviewService lists entries and applies review decisions.
type ReviewService struct {
	store    storage.Store
	notifier notify.Notifier
	metrics  *metrics.Metrics
}

// NewReviewService creates a ReviewService. The notifier should not block;
// in production it is a notify.Dispatcher.
func NewReviewService(store storage.Store, notifier notify.Notifier, m *metrics.Metrics) *ReviewService {
	return &ReviewService{store: store, notifier: notifier, metrics: m}
}

// Transition sets an entry's review status and then notifies the duo.
// Notification is best-effort: its failure is logged and never returned, and
// the status change stands regardless.
func (s *ReviewService) Transition(ctx context.Context, id string, status models.Status) (*models.Entry, error) {
	if !status.Terminal() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	entry, err := s.store.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	if entry.Status.Terminal() {
		slog.Warn("Entry already reviewed, applying again",
			"entry_id", id,
			"from", entry.Status,
			"to", status,
		)
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	entry.Status = status
	s.metrics.IncTransition(string(status))
	slog.Info("Entry reviewed", "entry_id", id, "status", status)

	if s.notifier != nil {
		if err := s.notifier.SendStatusChange(ctx, *entry, status); err != nil {
			slog.Warn("Status notification not queued", "entry_id", id, "error", err)
		}
	}
	return entry, nil
}

// TransitionEntry handles the TransitionEntry RPC.
func (s *ReviewService) TransitionEntry(ctx context.Context, req *connect.Request[adminv1.TransitionEntryRequest]) (*connect.Response[adminv1.TransitionEntryResponse], error) {
	slog.Info("TransitionEntry request received", "entry_id", req.Msg.ID, "status", req.Msg.Status)

	entry, err := s.Transition(ctx, req.Msg.ID, models.Status(req.Msg.Status))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.TransitionEntryResponse{Entry: toEntryMessage(entry)}), nil
}

// GetEntry handles the GetEntry RPC.
func (s *ReviewService) GetEntry(ctx context.Context, req *connect.Request[adminv1.GetEntryRequest]) (*connect.Response[adminv1.GetEntryResponse], error) {
	entry, err := s.store.GetEntry(ctx, req.Msg.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, ErrEntryNotFound)
		}
		slog.Error("GetEntry failed", "entry_id", req.Msg.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&adminv1.GetEntryResponse{Entry: toEntryMessage(entry)}), nil
}

// ListEntries handles the ListEntries RPC: the filtered entries, newest
// first, with their uniform totals and every known category.
func (s *ReviewService) ListEntries(ctx context.Context, req *connect.Request[adminv1.ListEntriesRequest]) (*connect.Response[adminv1.ListEntriesResponse], error) {
	filter, err := ParseFilter(req.Msg.Category, req.Msg.Status)
	if err != nil {
		return nil, toConnectError(err)
	}

	entries, err := s.store.ListEntries(ctx, filter)
	if err != nil {
		slog.Error("ListEntries failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		slog.Error("ListCategories failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &adminv1.ListEntriesResponse{
		Entries:    make([]*adminv1.Entry, len(entries)),
		Uniforms:   toUniformMessages(calculator.UniformTotals(entries)),
		Categories: categories,
	}
	for i, e := range entries {
		resp.Entries[i] = toEntryMessage(e)
	}

	slog.Debug("ListEntries successful",
		"category", filter.Category,
		"status", filter.Status,
		"count", len(entries),
	)
	return connect.NewResponse(resp), nil
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidStatus):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ErrEntryNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ErrPublishNotConfigured):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		slog.Error("Admin request failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}
