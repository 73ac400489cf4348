package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/duoreg/internal/calculator"
	"github.com/mmynk/duoreg/internal/export"
	"github.com/mmynk/duoreg/internal/intake"
	"github.com/mmynk/duoreg/internal/metrics"
	"github.com/mmynk/duoreg/internal/models"
	"github.com/mmynk/duoreg/internal/proof"
	"github.com/mmynk/duoreg/internal/storage"
	"github.com/mmynk/duoreg/internal/storage/sqlite"
	adminv1 "github.com/mmynk/duoreg/pkg/adminv1"
)

const testMaxSize = 64

type testEnv struct {
	store     *sqlite.SQLiteStore
	sink      *proof.DiskSink
	metrics   *metrics.Metrics
	notifier  *recordingNotifier
	publisher *recordingPublisher
	intake    *IntakeService
	review    *ReviewService
	exports   *ExportService
	client    adminv1.AdminServiceClient
}

// setupTestEnv wires every service over a temp SQLite database and upload
// directory, and serves the admin RPCs from an httptest server.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	store, err := sqlite.New(filepath.Join(dir, "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	sink, err := proof.NewDiskSink(filepath.Join(dir, "uploads"), "/uploads", testMaxSize)
	require.NoError(t, err)

	fields, err := intake.Lookup("v2")
	require.NoError(t, err)

	env := &testEnv{
		store:     store,
		sink:      sink,
		metrics:   metrics.New(prometheus.NewRegistry()),
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
	}
	env.intake = NewIntakeService(store, sink, fields, calculator.DefaultScoreWeights, env.metrics, testMaxSize)
	env.review = NewReviewService(store, env.notifier, env.metrics)
	env.exports = NewExportService(store, time.UTC, env.publisher, env.metrics)

	path, handler := adminv1.NewAdminServiceHandler(NewAdminService(env.review, env.exports))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	env.client = adminv1.NewAdminServiceClient(server.Client(), server.URL)

	return env
}

func seedEntry(t *testing.T, store storage.Store, fingerprint, category string, submittedAt time.Time) *models.Entry {
	t.Helper()
	entry := &models.Entry{
		SubmittedAt: submittedAt,
		Athlete1:    models.Athlete{Name: "Ana", Email: "ana@example.com", Kit: "m masculino"},
		Athlete2:    models.Athlete{Name: "Bia", Email: "bia@example.com", Kit: "G"},
		Duo:         models.Duo{Name: "Maré Alta", Category: category},
		Consent:     true,
		Proof:       models.Proof{Filename: fingerprint + ".pdf", URL: "/uploads/" + fingerprint + ".pdf", Fingerprint: fingerprint, MimeType: "application/pdf"},
		Status:      models.StatusPendingReview,
		Validation:  models.Validation{Score: 90, MimeType: "application/pdf"},
	}
	require.NoError(t, store.CreateEntry(context.Background(), entry))
	return entry
}

// recordingNotifier records the statuses it was asked to send. It can be
// told to fail.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Status
	err  error
}

func (r *recordingNotifier) SendStatusChange(_ context.Context, _ models.Entry, status models.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, status)
	return r.err
}

func (r *recordingNotifier) statuses() []models.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Status(nil), r.sent...)
}

type recordingPublisher struct {
	published []export.Workbook
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, wb export.Workbook) error {
	p.published = append(p.published, wb)
	return p.err
}

func (p *recordingPublisher) SpreadsheetID() string { return "sheet-123" }

func codeOf(t *testing.T, err error) connect.Code {
	t.Helper()
	require.Error(t, err)
	return connect.CodeOf(err)
}
