// Package metrics holds the Prometheus metrics of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Submissions   *prometheus.CounterVec
	Transitions   *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	Exports       *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "duoreg_submissions_total",
			Help: "Registration submissions by outcome",
		}, []string{"outcome"}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "duoreg_review_transitions_total",
			Help: "Review status transitions by target status",
		}, []string{"status"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "duoreg_notifications_total",
			Help: "Status notification attempts by result",
		}, []string{"result"}),
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "duoreg_exports_total",
			Help: "Exports by target",
		}, []string{"target"}),
	}
}

// IncSubmission counts one submission outcome, e.g. "created" or "duplicate".
func (m *Metrics) IncSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// IncTransition counts one review transition.
func (m *Metrics) IncTransition(status string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(status).Inc()
}

// IncNotification counts one notification result: "sent", "failed" or "dropped".
func (m *Metrics) IncNotification(result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(result).Inc()
}

// IncExport counts one export, e.g. "xlsx" or "sheets".
func (m *Metrics) IncExport(target string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(target).Inc()
}
