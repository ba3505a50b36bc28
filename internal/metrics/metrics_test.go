package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeRegistersMetrics(t *testing.T) {
	srv := Serve(":0")
	defer srv.Close()

	SignalsTotal.WithLabelValues("AAPL", "Neutral").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(SignalsTotal.WithLabelValues("AAPL", "Neutral")))

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "signaldesk_signals_total" {
			found = true
			break
		}
	}
	assert.True(t, found, "signaldesk_signals_total metric not found")
}
