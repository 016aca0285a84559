package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegistry(reg)

	r.RecordRowsLoaded("prices", 10)
	r.RecordRowsLoaded("prices", 12)
	r.RecordMatches(3, 1)
	r.RecordMatches(3, 1)
	r.RecordError("load")

	if got := testutil.ToFloat64(r.rowsLoaded.WithLabelValues("prices")); got != 12 {
		t.Fatalf("expected gauge 12, got %v", got)
	}
	if got := testutil.ToFloat64(r.matches.WithLabelValues("matched")); got != 6 {
		t.Fatalf("expected 6 matched, got %v", got)
	}
	if got := testutil.ToFloat64(r.matches.WithLabelValues("unmatched")); got != 2 {
		t.Fatalf("expected 2 unmatched, got %v", got)
	}
	if got := testutil.ToFloat64(r.errorsTotal.WithLabelValues("load")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
}

func TestRecorderIsolatedRegistries(t *testing.T) {
	// two recorders on separate registries must not collide
	NewWithRegistry(prometheus.NewRegistry())
	NewWithRegistry(prometheus.NewRegistry())
}
