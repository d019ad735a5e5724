package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountsKeepsInsertionOrder(t *testing.T) {
	var a Amounts
	a.Set("600036.SH", decimal.NewFromInt(1))
	a.Set("600519.SH", decimal.NewFromInt(2))
	a.Set("000001.SZ", decimal.NewFromInt(3))
	a.Set("600036.SH", decimal.NewFromInt(9))

	assert.Equal(t, []string{"600036.SH", "600519.SH", "000001.SZ"}, a.Symbols())
	v, ok := a.Get("600036.SH")
	assert.True(t, ok)
	assert.Equal(t, "9", v.String())

	_, ok = a.Get("601318.SH")
	assert.False(t, ok)
}

func TestSnapshotRendering(t *testing.T) {
	pos := NewPositionSnapshot("2024-05-31")
	pos.Set("600519.SH", decimal.NewFromInt(100))
	pos.Set("CASH", decimal.RequireFromString("5000"))
	assert.Equal(t, `{"600519.SH": 100, "CASH": 5000}`, pos.String())
	assert.Equal(t, "100", pos.Shares("600519.SH").String())
	assert.True(t, pos.Shares("601318.SH").IsZero())

	prices := NewPriceSnapshot("2024-05-31", PriceClose)
	prices.Set("600519.SH", decimal.NewFromFloat(1700.0))
	prices.Set("600036.SH", decimal.RequireFromString("34.56"))
	assert.Equal(t, `{"600519.SH": 1700.0, "600036.SH": 34.56}`, prices.String())

	var empty PriceSnapshot
	assert.Equal(t, "{}", empty.String())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1700.0", FormatPrice(decimal.RequireFromString("1700.00")))
	assert.Equal(t, "0.0", FormatPrice(decimal.Zero))
	assert.Equal(t, "-12.5", FormatPrice(decimal.RequireFromString("-12.50")))
}
