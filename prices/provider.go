package prices

import (
	"context"

	"github.com/shopspring/decimal"

	"astock/market"
	"astock/model"
)

// Provider 价格数据源
type Provider interface {
	// OpenPrices 当日开盘价（买入价），缺数据的代码不出现在快照中
	OpenPrices(ctx context.Context, date string, symbols []string, m market.Market) (model.PriceSnapshot, error)
	// YesterdayOpenAndClose 上一交易日的开盘价（买入）与收盘价（卖出）
	YesterdayOpenAndClose(ctx context.Context, date string, symbols []string, m market.Market) (buy, sell model.PriceSnapshot, err error)
}

// BarSource 日K来源：返回各代码截止 date（含）的若干根日K，
// 无数据的代码可以缺席，不视为错误
type BarSource interface {
	Bars(ctx context.Context, m market.Market, symbols []string, date string) (map[string][]model.Bar, error)
}

// BarProvider 基于日K来源实现 Provider
type BarProvider struct {
	src BarSource
}

func NewBarProvider(src BarSource) *BarProvider {
	return &BarProvider{src: src}
}

func (p *BarProvider) OpenPrices(ctx context.Context, date string, symbols []string, m market.Market) (model.PriceSnapshot, error) {
	snap := model.NewPriceSnapshot(date, model.PriceOpen)
	if len(symbols) == 0 {
		return snap, nil
	}
	bars, err := p.src.Bars(ctx, m, symbols, date)
	if err != nil {
		return snap, err
	}
	for _, sym := range symbols {
		if today, _ := splitBars(bars[sym], date); today != nil {
			snap.Set(sym, decimal.NewFromFloat(today.Open))
		}
	}
	return snap, nil
}

func (p *BarProvider) YesterdayOpenAndClose(ctx context.Context, date string, symbols []string, m market.Market) (model.PriceSnapshot, model.PriceSnapshot, error) {
	buy := model.NewPriceSnapshot("", model.PriceOpen)
	sell := model.NewPriceSnapshot("", model.PriceClose)
	if len(symbols) == 0 {
		return buy, sell, nil
	}
	bars, err := p.src.Bars(ctx, m, symbols, date)
	if err != nil {
		return buy, sell, err
	}
	for _, sym := range symbols {
		_, prev := splitBars(bars[sym], date)
		if prev == nil {
			continue
		}
		if buy.Date == "" || prev.Date > buy.Date {
			buy.Date, sell.Date = prev.Date, prev.Date
		}
		buy.Set(sym, decimal.NewFromFloat(prev.Open))
		sell.Set(sym, decimal.NewFromFloat(prev.Close))
	}
	return buy, sell, nil
}

// splitBars 找出 date 当天的日K 以及 date 之前最近一根日K
// 日期均为 YYYY-MM-DD，可直接按字符串比较
func splitBars(bars []model.Bar, date string) (today, prev *model.Bar) {
	for i := range bars {
		b := &bars[i]
		switch {
		case b.Date == date:
			today = b
		case b.Date < date:
			if prev == nil || b.Date > prev.Date {
				prev = b
			}
		}
	}
	return today, prev
}
