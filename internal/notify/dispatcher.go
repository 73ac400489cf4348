package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/duoreg/internal/metrics"
	"github.com/mmynk/duoreg/internal/models"
)

// ErrQueueFull is returned when the dispatcher cannot accept more work.
var ErrQueueFull = errors.New("notification queue full")

const (
	defaultQueueSize = 64
	sendTimeout      = 30 * time.Second
	drainTimeout     = 10 * time.Second
)

type job struct {
	entry  models.Entry
	status models.Status
}

// Dispatcher is a Notifier that queues sends for a background worker, so the
// caller returns as soon as the status change is committed.
type Dispatcher struct {
	next    Notifier
	queue   chan job
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ Notifier = (*Dispatcher)(nil)

// NewDispatcher wraps next. A non-positive size uses the default queue size.
func NewDispatcher(next Notifier, size int, m *metrics.Metrics, logger *slog.Logger) *Dispatcher {
	if size <= 0 {
		size = defaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		next:    next,
		queue:   make(chan job, size),
		metrics: m,
		logger:  logger,
	}
}

// SendStatusChange queues the notification without blocking.
func (d *Dispatcher) SendStatusChange(_ context.Context, entry models.Entry, status models.Status) error {
	select {
	case d.queue <- job{entry: entry, status: status}:
		return nil
	default:
		d.metrics.IncNotification("dropped")
		return ErrQueueFull
	}
}

// Run delivers queued notifications until ctx is done, then drains what is
// already queued within a bounded time.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return nil
		case j := <-d.queue:
			d.deliver(ctx, j)
		}
	}
}

func (d *Dispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case j := <-d.queue:
			d.deliver(ctx, j)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, j job) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.next.SendStatusChange(ctx, j.entry, j.status); err != nil {
		d.metrics.IncNotification("failed")
		d.logger.Warn("Status notification failed",
			"entry_id", j.entry.ID,
			"status", j.status,
			"error", err,
		)
		return
	}
	d.metrics.IncNotification("sent")
	d.logger.Info("Status notification sent", "entry_id", j.entry.ID, "status", j.status)
}
