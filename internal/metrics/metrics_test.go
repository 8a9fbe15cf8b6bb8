package metrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billbook/internal/metrics"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestObserveCommand(t *testing.T) {
	okBefore := counterValue(t, metrics.CommandsTotal.WithLabelValues("add_item", "ok"))
	errBefore := counterValue(t, metrics.CommandsTotal.WithLabelValues("add_item", "error"))

	metrics.ObserveCommand("add_item", nil)
	metrics.ObserveCommand("add_item", errors.New("boom"))
	metrics.ObserveCommand("add_item", nil)

	assert.Equal(t, okBefore+2, counterValue(t, metrics.CommandsTotal.WithLabelValues("add_item", "ok")))
	assert.Equal(t, errBefore+1, counterValue(t, metrics.CommandsTotal.WithLabelValues("add_item", "error")))
}

func TestObserveRecalculations(t *testing.T) {
	runsBefore := counterValue(t, metrics.RecalculationsTotal.WithLabelValues("run"))
	writesBefore := counterValue(t, metrics.RecalculationsTotal.WithLabelValues("write"))

	metrics.ObserveRecalculations(3, 1)

	assert.Equal(t, runsBefore+3, counterValue(t, metrics.RecalculationsTotal.WithLabelValues("run")))
	assert.Equal(t, writesBefore+1, counterValue(t, metrics.RecalculationsTotal.WithLabelValues("write")))
}
