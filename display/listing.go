package display

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"astock/market"
)

// Listing 标的池中的一个标的
type Listing struct {
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name,omitempty"`
	Board      market.Board    `json:"board,omitempty"`
	PriceLimit decimal.Decimal `json:"price_limit"`
}

// Listings 解析名称、板块与涨跌幅限制；无法识别的代码只保留代码本身
func (f *Formatter) Listings(ctx context.Context, m market.Market, symbols []string) []Listing {
	byCode := f.names.Names(ctx, m, symbols)
	out := make([]Listing, 0, len(symbols))
	for _, raw := range symbols {
		l := Listing{Symbol: raw, Name: byCode[raw]}
		if sym, err := market.ParseSymbol(raw); err == nil {
			l.Board = market.BoardOf(sym)
			l.PriceLimit = market.PriceLimit(sym, l.Name)
		}
		out = append(out, l)
	}
	return out
}

// FormatListings 表格形式输出，每行：代码 名称 板块 涨跌幅
func FormatListings(ls []Listing) string {
	var b strings.Builder
	for _, l := range ls {
		limit := "-"
		if l.PriceLimit.IsPositive() {
			limit = "±" + l.PriceLimit.Shift(2).String() + "%"
		}
		name := l.Name
		if name == "" {
			name = "-"
		}
		board := string(l.Board)
		if board == "" {
			board = "-"
		}
		fmt.Fprintf(&b, "%-10s %-12s %-8s %s\n", l.Symbol, name, board, limit)
	}
	return b.String()
}
