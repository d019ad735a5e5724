package display

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astock/market"
	"astock/model"
)

func snap(kv ...string) model.PriceSnapshot {
	s := model.NewPriceSnapshot("2024-05-31", model.PriceClose)
	for i := 0; i < len(kv); i += 2 {
		s.Set(kv[i], decimal.RequireFromString(kv[i+1]))
	}
	return s
}

func TestFormatWithNames(t *testing.T) {
	f := NewFormatter(nil)
	got := f.Format(context.Background(), snap("600519.SH", "1700.0", "000001.SZ", "10.52"), market.CN)
	assert.Equal(t, "600519.SH (贵州茅台): 1700.0\n000001.SZ: 10.52", got)
}

func TestFormatPreservesInsertionOrder(t *testing.T) {
	f := NewFormatter(nil)
	ctx := context.Background()

	a := f.Format(ctx, snap("600519.SH", "1700", "600036.SH", "34.5"), market.CN)
	b := f.Format(ctx, snap("600036.SH", "34.5", "600519.SH", "1700"), market.CN)

	assert.Equal(t, "600519.SH (贵州茅台): 1700.0\n600036.SH (招商银行): 34.5", a)
	assert.Equal(t, "600036.SH (招商银行): 34.5\n600519.SH (贵州茅台): 1700.0", b)
}

func TestFormatEmpty(t *testing.T) {
	assert.Equal(t, "", NewFormatter(nil).Format(context.Background(), model.PriceSnapshot{}, market.CN))
}

func TestListings(t *testing.T) {
	f := NewFormatter(nil)
	ls := f.Listings(context.Background(), market.CN, []string{"600519.SH", "688981.SH", "bogus"})
	require.Len(t, ls, 3)

	assert.Equal(t, "贵州茅台", ls[0].Name)
	assert.Equal(t, market.BoardMain, ls[0].Board)
	assert.Equal(t, "0.1", ls[0].PriceLimit.String())

	assert.Equal(t, market.BoardSTAR, ls[1].Board)
	assert.Equal(t, "0.2", ls[1].PriceLimit.String())

	assert.Equal(t, "bogus", ls[2].Symbol)
	assert.Empty(t, ls[2].Board)

	table := FormatListings(ls)
	assert.Contains(t, table, "±10%")
	assert.Contains(t, table, "±20%")
}
