package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalDesk/internal/model"
)

func TestCollectorSeries(t *testing.T) {
	col := NewCollector(&MockFetcher{Price: 200}, 0)
	assert.Equal(t, 250, col.HistoryDays)

	series, err := col.Series(context.Background(), " nvda ")
	require.NoError(t, err)
	assert.Equal(t, "NVDA", series.Ticker)
	assert.Equal(t, 250, series.Len())
	assert.False(t, series.FetchedAt.IsZero())
	for i := 1; i < series.Len(); i++ {
		assert.True(t, series.Bars[i].Date.After(series.Bars[i-1].Date))
	}
}

func TestCollectorErrors(t *testing.T) {
	col := NewCollector(&MockFetcher{Err: errors.New("boom")}, 30)
	_, err := col.Series(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, err = col.Series(context.Background(), "  ")
	assert.Error(t, err)

	empty := NewCollector(&MockFetcher{DailyData: map[string][]model.OHLCV{"EMPTY": {}}}, 30)
	_, err = empty.Series(context.Background(), "EMPTY")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not fetch data")
}
