package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorsCount(t *testing.T) {
	before := testutil.ToFloat64(CheckRuns.WithLabelValues("completed"))
	CheckRuns.WithLabelValues("completed").Inc()
	if got := testutil.ToFloat64(CheckRuns.WithLabelValues("completed")); got != before+1 {
		t.Fatalf("CheckRuns = %v, want %v", got, before+1)
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	CheckBatches.WithLabelValues("ok").Inc()
	CheckBatchDuration.Observe(0.25)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, name := range []string{"tgcheck_batches_total", "tgcheck_batch_duration_seconds"} {
		if !strings.Contains(body, name) {
			t.Fatalf("scrape output missing %s", name)
		}
	}
}
