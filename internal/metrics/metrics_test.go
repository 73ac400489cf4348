package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncSubmission("created")
	m.IncSubmission("created")
	m.IncSubmission("duplicate")
	m.IncTransition("accepted")
	m.IncNotification("failed")
	m.IncExport("xlsx")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exports.WithLabelValues("xlsx")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncSubmission("created")
		m.IncTransition("rejected")
		m.IncNotification("sent")
		m.IncExport("sheets")
	})
}
