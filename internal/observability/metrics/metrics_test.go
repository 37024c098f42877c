package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kariua-parish/parish-site/internal/observability/metrics"
)

func TestMetricsAreNamespaced(t *testing.T) {
	metrics.IntentionSubmissionsTotal.WithLabelValues("persisted").Inc()
	metrics.DBQueryErrors.WithLabelValues("create_prayer_intention", "prayer_intentions", "*pgconn.PgError").Inc()
	metrics.HTTPRequestsTotal.WithLabelValues("test", "GET", "/api/health").Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	want := map[string]bool{
		"parish_prayer_intention_submissions_total": false,
		"parish_store_query_errors_total":           false,
		"parish_http_requests_total":                false,
	}
	for _, mf := range families {
		if _, ok := want[mf.GetName()]; ok {
			want[mf.GetName()] = true
		}
		if strings.HasPrefix(mf.GetName(), "http_") || strings.HasPrefix(mf.GetName(), "db_") {
			t.Errorf("metric %s is missing the parish namespace", mf.GetName())
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected metric %s to be registered", name)
		}
	}
}
