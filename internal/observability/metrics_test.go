package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveJobRun("send_mails", "ok", time.Second)
	m.IncSlaEvaluation("deliverable", "RED")
	m.IncNotificationEmitted("mail/client-sla.html")
	m.IncNotificationDispatched("sent")
	m.IncDeliverableVersion()
	m.AddRetention("notification", "purged", 3)
	m.ObserveHTTP("GET", "/jobs", "200", time.Millisecond)
	require.NotNil(t, m.Handler())
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveJobRun("update_sla", "ok", 20*time.Millisecond)
	m.ObserveJobRun("update_sla", "ok", 30*time.Millisecond)
	m.IncSlaEvaluation("client", "")
	m.IncDeliverableVersion()
	m.AddRetention("notification", "expired", 0)
	m.ObserveHTTP("GET", "/healthz", "200", time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.jobRuns.WithLabelValues("update_sla", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.slaEvaluations.WithLabelValues("client", "UNSET")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.deliverableVersions))
	require.Equal(t, 0, testutil.CollectAndCount(m.retentionRowsAffected))
	require.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/healthz", "200")))
}
