package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/duoreg/internal/calculator"
	"github.com/mmynk/duoreg/internal/config"
	"github.com/mmynk/duoreg/internal/export"
	"github.com/mmynk/duoreg/internal/intake"
	"github.com/mmynk/duoreg/internal/metrics"
	"github.com/mmynk/duoreg/internal/middleware"
	"github.com/mmynk/duoreg/internal/notify"
	"github.com/mmynk/duoreg/internal/proof"
	"github.com/mmynk/duoreg/internal/service"
	"github.com/mmynk/duoreg/internal/storage"
	"github.com/mmynk/duoreg/internal/storage/postgres"
	"github.com/mmynk/duoreg/internal/storage/sqlite"
	httptransport "github.com/mmynk/duoreg/internal/transport/http"
	adminv1 "github.com/mmynk/duoreg/pkg/adminv1"
	"github.com/mmynk/duoreg/pkg/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = store.Ping(pingCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("storage unreachable: %w", err)
	}
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	sink, err := proof.NewDiskSink(cfg.UploadDir, cfg.UploadURLPrefix(), cfg.MaxUploadBytes)
	if err != nil {
		return err
	}
	slog.Info("Storing proofs", "path", sink.Dir(), "max_bytes", cfg.MaxUploadBytes)

	fields, err := intake.Lookup(cfg.FieldMapVersion)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var sender notify.Notifier = notify.NewLogNotifier(slog.Default())
	if cfg.SMTPEnabled() {
		smtp, err := notify.NewSMTPNotifier(cfg.SMTP)
		if err != nil {
			return err
		}
		sender = smtp
		slog.Info("Status emails enabled", "smtp_host", cfg.SMTP.Host, "from", cfg.SMTP.From)
	}
	dispatcher := notify.NewDispatcher(sender, cfg.NotifyQueueSize, m, slog.Default())

	var publisher service.Publisher
	if cfg.SheetsEnabled() {
		sheets, err := export.NewSheetsPublisher(ctx, cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			return err
		}
		publisher = sheets
		slog.Info("Sheets publishing enabled", "spreadsheet_id", cfg.SpreadsheetID)
	}

	intakeSvc := service.NewIntakeService(store, sink, fields, calculator.DefaultScoreWeights, m, cfg.MaxUploadBytes)
	reviewSvc := service.NewReviewService(store, dispatcher, m)
	exportSvc := service.NewExportService(store, cfg.Location, publisher, m)

	adminPath, adminHandler := adminv1.NewAdminServiceHandler(
		service.NewAdminService(reviewSvc, exportSvc),
		connect.WithInterceptors(middleware.LoggingInterceptor()),
	)

	staticDir := ""
	if cfg.StaticPath != "" {
		if staticDir, err = filepath.Abs(cfg.StaticPath); err != nil {
			return fmt.Errorf("failed to resolve static path: %w", err)
		}
		slog.Info("Serving static files", "path", staticDir)
	}

	handler := httptransport.New(httptransport.Options{
		Intake:         intakeSvc,
		Exporter:       exportSvc,
		Store:          store,
		Uploads:        sink,
		Gatherer:       reg,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	router := httptransport.NewRouter(handler, httptransport.RouterOptions{
		AdminPath: adminPath,
		Admin:     adminHandler,
		StaticDir: staticDir,
	})

	// h2c serves HTTP/2 without TLS for Connect clients.
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// The dispatcher outlives the server so transitions still in flight at
	// shutdown get their notifications queued and drained.
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(dispatchCtx)
	})
	g.Go(func() error {
		slog.Info("Server starting", "address", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		defer stopDispatch()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.DatabaseURL)
	default:
		return sqlite.New(cfg.DBPath)
	}
}
