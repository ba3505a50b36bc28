package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMASeries(t *testing.T) {
	out := SMASeries([]float64{1, 2, 3, 4, 5, 6}, 3)
	require.Len(t, out, 6)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 5.0, out[5], 1e-9)
}

func TestSMASeries_TooShortIsAllNaN(t *testing.T) {
	out := SMASeries([]float64{1, 2}, 5)
	require.Len(t, out, 2)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestRoundSeries(t *testing.T) {
	out := RoundSeries([]float64{1.23456, math.NaN(), 2.005, math.Inf(1)}, 2)
	assert.Equal(t, 1.23, out[0])
	assert.True(t, math.IsNaN(out[1]))
	assert.Equal(t, 2.01, out[2])
	assert.True(t, math.IsInf(out[3], 1))
}
