// Package httptransport is the public HTTP surface: the registration form
// endpoint, stored proofs, the spreadsheet download, health and metrics, and
// the mount point of the admin RPCs.
package httptransport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/duoreg/internal/middleware"
	"github.com/mmynk/duoreg/internal/proof"
	"github.com/mmynk/duoreg/internal/storage"
	"github.com/mmynk/duoreg/pkg/adminv1"
)

// Intake stores one submitted registration.
type Intake interface {
	Submit(ctx context.Context, fields url.Values, upload *proof.Upload) (string, error)
}

// Exporter writes a filtered XLSX export.
type Exporter interface {
	WriteXLSX(ctx context.Context, w io.Writer, filter storage.Filter) error
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the dependencies of the HTTP endpoints.
type Handler struct {
	intake    Intake
	exporter  Exporter
	store     Pinger
	uploads   proof.Sink
	gatherer  prometheus.Gatherer
	maxUpload int64
	now       func() time.Time
}

// Options configures a Handler.
type Options struct {
	Intake   Intake
	Exporter Exporter
	Store    Pinger
	Uploads  proof.Sink
	Gatherer prometheus.Gatherer

	// MaxUploadBytes caps the proof file; the request body may exceed it by
	// the size of the form fields.
	MaxUploadBytes int64
}

// New creates a Handler.
func New(opts Options) *Handler {
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = proof.DefaultMaxSize
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{
		intake:    opts.Intake,
		exporter:  opts.Exporter,
		store:     opts.Store,
		uploads:   opts.Uploads,
		gatherer:  gatherer,
		maxUpload: maxUpload,
		now:       time.Now,
	}
}

// Register registers the routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/inscricao", h.handleSubmit)
	r.Get("/obrigado", h.handleThanks)
	r.Get("/uploads/{name}", h.handleUpload)
	r.Get("/admin/export", h.handleExport)
	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
}

// RouterOptions are the extra mounts of NewRouter.
type RouterOptions struct {
	// AdminPath and Admin mount the Connect admin service.
	AdminPath string
	Admin     http.Handler

	// StaticDir, when set, serves the registration form and assets at "/".
	StaticDir string
}

// NewRouter builds the full router with logging and recovery middleware.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS)

	h.Register(r)

	if opts.Admin != nil && opts.AdminPath != "" {
		r.Handle(opts.AdminPath+"*", opts.Admin)
	}
	if opts.StaticDir != "" {
		static := http.FileServer(http.Dir(opts.StaticDir))
		r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			// Unmounted admin RPCs must not fall through to the form pages.
			if adminv1.IsAdminPath(req.URL.Path) {
				http.NotFound(w, req)
				return
			}
			static.ServeHTTP(w, req)
		}))
	}
	return r
}
