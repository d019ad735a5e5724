package prices

import (
	"context"
	"fmt"

	"astock/fetcher"
	"astock/market"
	"astock/model"
	"astock/trading"
)

// 往前多取的日K根数，覆盖长假
const lookbackBars = 15

// EastMoneySource 东方财富日K，仅支持A股
type EastMoneySource struct {
	kf *fetcher.KLineFetcher
}

func NewEastMoneySource(kf *fetcher.KLineFetcher) *EastMoneySource {
	return &EastMoneySource{kf: kf}
}

func (s *EastMoneySource) Bars(ctx context.Context, m market.Market, symbols []string, date string) (map[string][]model.Bar, error) {
	if m != market.CN {
		return nil, fmt.Errorf("东方财富数据源不支持 %s 市场", m)
	}
	end, err := trading.CompactDate(date)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]model.Bar, len(symbols))
	for _, raw := range symbols {
		sym, err := market.ParseSymbol(raw)
		if err != nil {
			continue
		}
		secid, err := sym.EastMoneySecID()
		if err != nil {
			continue
		}
		bars, err := s.kf.FetchStockKLine(ctx, secid, end, lookbackBars)
		if err != nil {
			return nil, fmt.Errorf("获取 %s 日K失败: %w", raw, err)
		}
		out[raw] = bars
	}
	return out, nil
}
