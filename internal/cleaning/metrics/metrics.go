package metrics

import (
	"time"

	"datacleaner/pkg/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"

	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics provides observability for cleaning runs.
type Metrics struct {
	// Normalized values by derived field and outcome
	FieldOutcomes *prometheus.CounterVec

	// Rows cleaned by source
	Records *prometheus.CounterVec

	// Runs by source and status
	Runs *prometheus.CounterVec

	// Rules skipped because the raw column was absent
	SkippedColumns *prometheus.CounterVec

	RunDuration *prometheus.HistogramVec
}

// New registers the cleaning metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FieldOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_field_outcomes_total",
			Help: "Normalized values by derived field and outcome",
		}, []string{"field", "outcome"}), // outcome: "valid", "invalid"

		Records: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_records_total",
			Help: "Records cleaned by source",
		}, []string{"source"}),

		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_runs_total",
			Help: "Cleaning runs by source and status",
		}, []string{"source", "status"}),

		SkippedColumns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datacleaner_skipped_columns_total",
			Help: "Cleaning rules skipped because the raw column was absent",
		}, []string{"column"}),

		RunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datacleaner_run_duration_seconds",
			Help:    "Duration of a cleaning run",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"source"}),
	}
}

// ObserveRun records the outcome counts of a finished run.
func (m *Metrics) ObserveRun(run *model.CleaningRun, d time.Duration) {
	if m == nil || run == nil {
		return
	}
	m.Runs.WithLabelValues(run.Source, StatusOK).Inc()
	m.Records.WithLabelValues(run.Source).Add(float64(run.RecordCount))
	m.RunDuration.WithLabelValues(run.Source).Observe(d.Seconds())
	for _, c := range run.Columns {
		m.FieldOutcomes.WithLabelValues(c.Field, OutcomeValid).Add(float64(c.Valid))
		m.FieldOutcomes.WithLabelValues(c.Field, OutcomeInvalid).Add(float64(c.Invalid))
	}
	for _, col := range run.SkippedColumns {
		m.SkippedColumns.WithLabelValues(col).Inc()
	}
}

// RunFailed counts a run that ended with an error.
func (m *Metrics) RunFailed(source string) {
	if m != nil {
		m.Runs.WithLabelValues(source, StatusError).Inc()
	}
}
