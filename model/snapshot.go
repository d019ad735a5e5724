package model

import (
	"github.com/shopspring/decimal"
)

// PriceKind 价格时点
type PriceKind string

const (
	PriceOpen  PriceKind = "open"  // 开盘价（买入价）
	PriceClose PriceKind = "close" // 收盘价（卖出价）
)

// PriceSnapshot 某一交易日某一时点的价格快照
type PriceSnapshot struct {
	Date string
	Kind PriceKind
	Amounts
}

func NewPriceSnapshot(date string, kind PriceKind) PriceSnapshot {
	return PriceSnapshot{Date: date, Kind: kind}
}

func (p PriceSnapshot) String() string {
	return p.render(FormatPrice)
}

// PositionSnapshot 持仓快照：代码->股数，CASH->可用现金
type PositionSnapshot struct {
	Date string
	ID   int64
	Amounts
}

func NewPositionSnapshot(date string) PositionSnapshot {
	return PositionSnapshot{Date: date}
}

// Shares 某代码的持股数，不存在时为 0
func (p PositionSnapshot) Shares(symbol string) decimal.Decimal {
	v, _ := p.Get(symbol)
	return v
}

func (p PositionSnapshot) String() string {
	return p.render(FormatQuantity)
}

// ProfitReport 上一交易日收益
type ProfitReport struct {
	Date  string
	Total decimal.Decimal
	// Missing 有持仓但缺少价格、按 0 计入的代码
	Missing []string
	Amounts
}

func (r ProfitReport) String() string {
	return r.render(FormatPrice)
}
