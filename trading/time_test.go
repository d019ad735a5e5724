package trading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactDate(t *testing.T) {
	d, err := CompactDate("2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, "20240603", d)

	_, err = CompactDate("2024/06/03")
	assert.Error(t, err)
}

func TestIsStockTradingTimeAt(t *testing.T) {
	at := func(s string) time.Time {
		v, err := time.ParseInLocation("2006-01-02 15:04", s, cst)
		require.NoError(t, err)
		return v
	}
	assert.True(t, IsStockTradingTimeAt(at("2024-06-03 10:00")))
	assert.False(t, IsStockTradingTimeAt(at("2024-06-03 12:00")))
	assert.True(t, IsStockTradingTimeAt(at("2024-06-03 14:59")))
	assert.False(t, IsStockTradingTimeAt(at("2024-06-01 10:00"))) // 周六

	// UTC 02:00 = 北京时间 10:00
	assert.True(t, IsStockTradingTimeAt(time.Date(2024, 6, 3, 2, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-06-03", TodayAt(time.Date(2024, 6, 2, 17, 0, 0, 0, time.UTC)))
}
