package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOBVSeries_ManualRunningSum(t *testing.T) {
	closes := []float64{10, 11, 11, 9, 12, 12, 8}
	bars := barsFrom(closes, 0)
	vols := []float64{500, 100, 200, 300, 400, 50, 25}
	for i := range bars {
		bars[i].Volume = vols[i]
	}
	assert.Equal(t, []float64{0, 100, 100, -200, 200, 200, 175}, OBVSeries(bars))
}

func TestOBVSeries_Empty(t *testing.T) {
	assert.Nil(t, OBVSeries(nil))
}

func TestOBVChange_FlatSeriesIsZero(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 77.5
	}
	bars := barsFrom(closes, 0)
	for i := range bars {
		bars[i].Volume = float64(1000 * (i + 1))
	}
	change, err := CalculateOBVChange(bars, 20)
	require.NoError(t, err)
	assert.Equal(t, 0.0, change)
}

func TestOBVChange_AlternatingSeries(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100 + float64(i%2)
	}
	bars := barsFrom(closes, 1000)

	obv := OBVSeries(bars)
	expected := 0.0
	for i := range bars {
		if i > 0 {
			if i%2 == 1 {
				expected += 1000
			} else {
				expected -= 1000
			}
		}
		assert.Equal(t, expected, obv[i], "bar %d", i)
	}

	change, err := CalculateOBVChange(bars, 20)
	require.NoError(t, err)
	// OBV[24] = 0, OBV[4] = 0
	assert.Equal(t, 0.0, change)

	change, err = CalculateOBVChange(bars[:24], 20)
	require.NoError(t, err)
	// OBV[23] = 1000, OBV[3] = 1000
	assert.Equal(t, 0.0, change)

	change, err = CalculateOBVChange(bars, 3)
	require.NoError(t, err)
	// OBV[24] = 0, OBV[21] = 1000
	assert.Equal(t, -1000.0, change)
}

func TestOBVChange_UsesExactLookbackOffset(t *testing.T) {
	bars := barsFrom(rising(22), 10)
	change, err := CalculateOBVChange(bars, 20)
	require.NoError(t, err)
	// every bar adds 10; OBV[21]-OBV[1] = 200
	assert.Equal(t, 200.0, change)
}

func TestOBVChange_InsufficientData(t *testing.T) {
	_, err := CalculateOBVChange(barsFrom(rising(20), 1000), 20)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = CalculateOBVChange(barsFrom(rising(21), 1000), 20)
	assert.NoError(t, err)

	_, err = CalculateOBVChange(barsFrom(rising(21), 1000), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
