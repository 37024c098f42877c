package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntentionSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "prayer_intention_submissions_total",
			Help:      "Prayer intention submissions by terminal state",
		},
		[]string{"outcome"},
	)

	IntentionNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "prayer_intention_notifications_total",
			Help:      "Prayer intention notifications by result",
		},
		[]string{"result"},
	)

	ChatCompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "chat_completions_total",
			Help:      "Chat completion requests by result",
		},
		[]string{"result"},
	)

	ChatCompletionDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "chat_completion_duration_seconds",
			Help:      "Duration of upstream chat completion calls in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
	)
)
