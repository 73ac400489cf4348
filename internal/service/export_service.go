package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/duoreg/internal/calculator"
	"github.com/mmynk/duoreg/internal/export"
	"github.com/mmynk/duoreg/internal/metrics"
	"github.com/mmynk/duoreg/internal/storage"
	adminv1 "github.com/mmynk/duoreg/pkg/adminv1"
)

// ErrPublishNotConfigured is returned by PublishExport without a spreadsheet.
var ErrPublishNotConfigured = errors.New("spreadsheet publishing is not configured")

// Publisher writes a workbook to an external spreadsheet.
type Publisher interface {
	Publish(ctx context.Context, wb export.Workbook) error
	SpreadsheetID() string
}

// ExportService builds filtered exports.
type ExportService struct {
	store     storage.Store
	loc       *time.Location
	publisher Publisher
	metrics   *metrics.Metrics
}

// NewExportService creates an ExportService. publisher may be nil, in which
// case PublishExport fails with ErrPublishNotConfigured.
func NewExportService(store storage.Store, loc *time.Location, publisher Publisher, m *metrics.Metrics) *ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportService{store: store, loc: loc, publisher: publisher, metrics: m}
}

// Workbook lists the entries matching filter and projects them together with
// their uniform totals.
func (s *ExportService) Workbook(ctx context.Context, filter storage.Filter) (export.Workbook, int, error) {
	entries, err := s.store.ListEntries(ctx, filter)
	if err != nil {
		return export.Workbook{}, 0, fmt.Errorf("failed to list entries: %w", err)
	}
	totals := calculator.UniformTotals(entries)
	return export.Project(entries, totals, s.loc), len(entries), nil
}

// WriteXLSX writes the filtered export as an XLSX file.
func (s *ExportService) WriteXLSX(ctx context.Context, w io.Writer, filter storage.Filter) error {
	wb, n, err := s.Workbook(ctx, filter)
	if err != nil {
		return err
	}
	if err := export.WriteXLSX(w, wb); err != nil {
		return err
	}
	s.metrics.IncExport("xlsx")
	slog.Info("Export written", "target", "xlsx", "category", filter.Category, "status", filter.Status, "entries", n)
	return nil
}

// PublishExport handles the PublishExport RPC.
func (s *ExportService) PublishExport(ctx context.Context, req *connect.Request[adminv1.PublishExportRequest]) (*connect.Response[adminv1.PublishExportResponse], error) {
	if s.publisher == nil {
		return nil, toConnectError(ErrPublishNotConfigured)
	}
	filter, err := ParseFilter(req.Msg.Category, req.Msg.Status)
	if err != nil {
		return nil, toConnectError(err)
	}

	wb, n, err := s.Workbook(ctx, filter)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.publisher.Publish(ctx, wb); err != nil {
		slog.Error("PublishExport failed", "spreadsheet_id", s.publisher.SpreadsheetID(), "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	s.metrics.IncExport("sheets")
	slog.Info("Export published", "spreadsheet_id", s.publisher.SpreadsheetID(), "entries", n)
	return connect.NewResponse(&adminv1.PublishExportResponse{
		SpreadsheetID: s.publisher.SpreadsheetID(),
		Entries:       n,
	}), nil
}
