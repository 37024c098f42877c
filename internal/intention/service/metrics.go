package service

import (
	"errors"

	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/observability/metrics"
)

const (
	outcomeRejected      = "rejected"
	outcomePersistFailed = "persist_failed"
	outcomePersisted     = "persisted"
	outcomeNotified      = "notified"

	notificationDelivered    = "delivered"
	notificationUnconfigured = "unconfigured"
	notificationFailed       = "failed"
	notificationSkipped      = "skipped"
)

func recordSubmission(outcome string) {
	metrics.IntentionSubmissionsTotal.WithLabelValues(outcome).Inc()
}

func recordNotification(result string) {
	metrics.IntentionNotificationsTotal.WithLabelValues(result).Inc()
}

func isConfigurationMissing(err error) bool {
	return errors.Is(err, commonerrors.ErrConfigurationMissing)
}
