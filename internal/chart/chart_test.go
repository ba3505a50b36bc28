package chart

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalDesk/internal/model"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func makeBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := 100 + float64(i)
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: c - 1, High: c + 1, Low: c - 2, Close: c, Volume: float64(1000 + i)}
	}
	return bars
}

func TestSanitize(t *testing.T) {
	out := Sanitize([]float64{1.5, math.NaN(), math.Inf(1), math.Inf(-1), 0})
	require.Len(t, out, 5)
	assert.Equal(t, 1.5, *out[0])
	assert.Nil(t, out[1])
	assert.Nil(t, out[2])
	assert.Nil(t, out[3])
	assert.Equal(t, 0.0, *out[4])

	data, err := Marshal(map[string]any{"v": out})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":[1.5,null,null,null,0]}`, string(data))

	_, err = Marshal(map[string]any{"v": math.NaN()})
	assert.Error(t, err)
}

func TestPrice(t *testing.T) {
	c := Price("aapl", makeBars(250))
	require.Len(t, c.Labels, ChartWindow)
	require.Len(t, c.Datasets, 1)
	ds := c.Datasets[0]
	assert.Equal(t, "AAPL Close Price", ds.Label)
	assert.Equal(t, "2024-03-11", c.Labels[0])
	assert.Equal(t, 170.0, *ds.Data[0])
	assert.Equal(t, 349.0, *ds.Data[ChartWindow-1])
	assert.True(t, *ds.Fill)

	data, err := Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pointRadius":0`)
}

func TestVolumeShortHistory(t *testing.T) {
	c := Volume("msft", makeBars(10))
	require.Len(t, c.Labels, 10)
	assert.Equal(t, "MSFT Volume", c.Datasets[0].Label)
	assert.Equal(t, "bar", c.Datasets[0].Type)
	assert.Equal(t, 1009.0, *c.Datasets[0].Data[9])
}

func TestDMA(t *testing.T) {
	c := DMA("tcs", makeBars(200))
	require.Len(t, c.Labels, ChartWindow)
	require.Len(t, c.Datasets, 3)
	assert.Equal(t, "20-Day MA", c.Datasets[0].Label)
	assert.Equal(t, "50-Day MA", c.Datasets[1].Label)
	assert.Equal(t, "TCS Price", c.Datasets[2].Label)

	// window starts at index 20: MA20 defined (mean of closes 1..20 -> 110.5),
	// MA50 still undefined until index 49.
	require.NotNil(t, c.Datasets[0].Data[0])
	assert.InDelta(t, 110.5, *c.Datasets[0].Data[0], 1e-9)
	assert.Nil(t, c.Datasets[1].Data[0])
	assert.Nil(t, c.Datasets[1].Data[28])
	require.NotNil(t, c.Datasets[1].Data[29])
	assert.InDelta(t, 124.5, *c.Datasets[1].Data[29], 1e-9)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(data), "null")
}

func TestCandles(t *testing.T) {
	bars := makeBars(100)
	now := start.AddDate(0, 0, 100)
	cd := Candles("INFY.NS", bars, now)

	assert.Equal(t, "INFY.NS", cd.Symbol)
	require.Equal(t, 60, cd.Count)
	require.Len(t, cd.Data, 60)
	assert.Equal(t, "2024-02-10", cd.Data[0].Date)
	assert.Nil(t, cd.Data[0].SMA5)
	assert.Nil(t, cd.Data[3].SMA5)
	require.NotNil(t, cd.Data[4].SMA5)
	assert.InDelta(t, 142.0, *cd.Data[4].SMA5, 1e-9)
	assert.Nil(t, cd.Data[18].SMA20)
	require.NotNil(t, cd.Data[19].SMA20)

	data, err := Marshal(cd)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"SMA5":null`)
}
