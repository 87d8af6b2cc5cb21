package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveEvaluation(t *testing.T) {
	r := New()
	r.ObserveEvaluation(25, true, time.Millisecond)
	r.ObserveEvaluation(25, true, time.Millisecond)
	r.ObserveEvaluation(3, false, time.Microsecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.evaluations.WithLabelValues(OutcomeReport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.evaluations.WithLabelValues(OutcomeInsufficient)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.seriesLength))
}

func TestRecorder_RecordError(t *testing.T) {
	r := New()
	r.RecordError("bind")
	r.RecordError("bind")
	r.RecordError("fetch")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("bind")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("fetch")))
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordError("bind")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.errorsTotal.WithLabelValues("bind")))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.ObserveEvaluation(30, true, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `quantanalyst_evaluations_total{outcome="report"} 1`)
	assert.Contains(t, string(body), "quantanalyst_series_length_count 1")
}
