package prices

import (
	"context"
	"fmt"

	"astock/fetcher"
	"astock/market"
	"astock/model"
	"astock/trading"
)

// 长桥只能取最近 N 根日K，按日期距今的自然日数估算
const maxLongportBars = 1000

// LongportSource 长桥日K
type LongportSource struct {
	client *fetcher.LongportClient
}

func NewLongportSource(client *fetcher.LongportClient) *LongportSource {
	return &LongportSource{client: client}
}

func (s *LongportSource) Bars(ctx context.Context, m market.Market, symbols []string, date string) (map[string][]model.Bar, error) {
	d, err := trading.ParseDate(date)
	if err != nil {
		return nil, err
	}
	today, _ := trading.ParseDate(trading.Today())
	count := int(today.Sub(d).Hours()/24) + lookbackBars
	if count > maxLongportBars {
		return nil, fmt.Errorf("长桥数据源仅支持最近 %d 根日K: %s", maxLongportBars, date)
	}
	if count < lookbackBars {
		count = lookbackBars
	}

	out := make(map[string][]model.Bar, len(symbols))
	for _, raw := range symbols {
		sym, err := market.ParseSymbol(raw)
		if err != nil || sym.Market() != m {
			continue
		}
		bars, err := s.client.DailyBars(ctx, sym.String(), count)
		if err != nil {
			return nil, fmt.Errorf("获取 %s 日K失败: %w", raw, err)
		}
		kept := bars[:0]
		for _, b := range bars {
			if b.Date <= date {
				kept = append(kept, b)
			}
		}
		out[raw] = kept
	}
	return out, nil
}
