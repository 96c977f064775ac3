package metrics

import (
	"testing"
	"time"

	"datacleaner/pkg/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRun(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRun(&model.CleaningRun{
		Source:      model.SourceCLI,
		RecordCount: 5,
		Columns: []model.ColumnReport{
			{Column: "Age", Field: "Age_cleaned", Valid: 3, Invalid: 2},
		},
		SkippedColumns: []string{"DOB"},
	}, 10*time.Millisecond)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.Records.WithLabelValues(model.SourceCLI)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(model.SourceCLI, StatusOK)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.FieldOutcomes.WithLabelValues("Age_cleaned", OutcomeValid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FieldOutcomes.WithLabelValues("Age_cleaned", OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SkippedColumns.WithLabelValues("DOB")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))
}

func TestRunFailed(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RunFailed(model.SourceAPICSV)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues(model.SourceAPICSV, StatusError)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun(&model.CleaningRun{Source: model.SourceCLI}, time.Second)
		m.RunFailed(model.SourceCLI)
	})
}
