package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records the outcomes of booking submissions and the
// downstream stages they pass through.
type PipelineMetrics struct {
	submissions   *prometheus.CounterVec
	verifications *prometheus.CounterVec
	notifications *prometheus.CounterVec
	quoteDuration *prometheus.HistogramVec
}

// NewPipelineMetrics registers the booking pipeline metrics on the provided
// registerer.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		return &PipelineMetrics{}
	}
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_submissions_total",
		Help: "Booking submissions by outcome.",
	}, []string{"outcome"})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_verifications_total",
		Help: "Bot challenge verification results.",
	}, []string{"result"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_notifications_total",
		Help: "Notification delivery results per recipient.",
	}, []string{"result"})
	quoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Duration of price quote computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"location"})
	reg.MustRegister(submissions, verifications, notifications, quoteDuration)
	return &PipelineMetrics{
		submissions:   submissions,
		verifications: verifications,
		notifications: notifications,
		quoteDuration: quoteDuration,
	}
}

// IncSubmission increments the submission counter for the given outcome.
func (p *PipelineMetrics) IncSubmission(outcome string) {
	if p == nil || p.submissions == nil {
		return
	}
	p.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncVerification increments the verification counter for the given result.
func (p *PipelineMetrics) IncVerification(result string) {
	if p == nil || p.verifications == nil {
		return
	}
	p.verifications.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncNotification increments the notification delivery counter.
func (p *PipelineMetrics) IncNotification(result string) {
	if p == nil || p.notifications == nil {
		return
	}
	p.notifications.WithLabelValues(normalizeLabel(result)).Inc()
}

// ObserveQuoteDuration records how long a price quote took for a location.
func (p *PipelineMetrics) ObserveQuoteDuration(location string, duration time.Duration) {
	if p == nil || p.quoteDuration == nil {
		return
	}
	p.quoteDuration.WithLabelValues(normalizeLabel(location)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
