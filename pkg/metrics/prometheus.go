package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	rowsLoaded   *prometheus.GaugeVec
	loadDuration *prometheus.HistogramVec
	matches      *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		rowsLoaded: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "brentlens_dataset_rows",
				Help: "Rows loaded per dataset table",
			},
			[]string{"table"},
		),
		loadDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "brentlens_dataset_load_duration_seconds",
				Help:    "Time spent loading the dataset at startup",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		matches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brentlens_change_point_matches_total",
				Help: "Change-point match outcomes",
			},
			[]string{"outcome"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "brentlens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordRowsLoaded sets the row count of a table.
func (r *Recorder) RecordRowsLoaded(table string, rows int) {
	r.rowsLoaded.WithLabelValues(table).Set(float64(rows))
}

// RecordLoadDuration records how long a dataset load took.
func (r *Recorder) RecordLoadDuration(source string, seconds float64) {
	r.loadDuration.WithLabelValues(source).Observe(seconds)
}

// RecordMatches counts matched and unmatched change-points.
func (r *Recorder) RecordMatches(matched, unmatched int) {
	r.matches.WithLabelValues("matched").Add(float64(matched))
	r.matches.WithLabelValues("unmatched").Add(float64(unmatched))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordRowsLoaded(string, int)       {}
func (Nop) RecordLoadDuration(string, float64) {}
func (Nop) RecordMatches(int, int)             {}
func (Nop) RecordError(string)                 {}
