// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of notifications sent successfully",
		},
		[]string{"channel"},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_failed_total",
			Help: "Total number of notification sends that failed",
		},
		[]string{"channel", "error_code"},
	)

	NotificationSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "notification_send_duration_seconds",
			Help: "Duration of a single notification send in seconds",
		},
		[]string{"channel"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preference_registrations_total",
			Help: "Total number of preference registration attempts",
		},
		[]string{"outcome"},
	)

	DispatchRunsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_runs_active",
			Help: "Number of batch dispatch runs currently in progress",
		},
	)
)
