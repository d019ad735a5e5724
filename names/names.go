// Package names 提供证券的本地化显示名称
package names

import (
	"context"

	"github.com/sirupsen/logrus"

	"astock/fetcher"
	"astock/market"
)

// Resolver 名称解析器；查不到的代码不出现在结果中，失败不报错
type Resolver interface {
	Names(ctx context.Context, m market.Market, symbols []string) map[string]string
}

// Static 内置名称表
type Static struct{}

func (Static) Names(_ context.Context, m market.Market, symbols []string) map[string]string {
	out := make(map[string]string, len(symbols))
	for _, sym := range symbols {
		if n, ok := market.StaticName(m, sym); ok {
			out[sym] = n
		}
	}
	return out
}

// Sina 通过新浪实时行情查询A股名称
type Sina struct {
	sf  *fetcher.StockFetcher
	log logrus.FieldLogger
}

func NewSina(sf *fetcher.StockFetcher, log logrus.FieldLogger) *Sina {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sina{sf: sf, log: log.WithField("component", "names")}
}

func (s *Sina) Names(ctx context.Context, m market.Market, symbols []string) map[string]string {
	out := map[string]string{}
	if m != market.CN {
		return out
	}

	bySina := map[string]string{}
	codes := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		sym, err := market.ParseSymbol(raw)
		if err != nil {
			continue
		}
		code, err := sym.SinaCode()
		if err != nil {
			continue
		}
		if _, seen := bySina[code]; !seen {
			codes = append(codes, code)
		}
		bySina[code] = raw
	}
	if len(codes) == 0 {
		return out
	}

	quotes, err := s.sf.Fetch(ctx, codes)
	if err != nil {
		s.log.WithError(err).Warn("新浪名称查询失败")
		return out
	}
	for _, q := range quotes {
		if q == nil || q.Name == "" {
			continue
		}
		if raw, ok := bySina[q.Code]; ok {
			out[raw] = q.Name
		}
	}
	return out
}

// Longport 通过长桥静态信息查询中文名称
type Longport struct {
	client *fetcher.LongportClient
	log    logrus.FieldLogger
}

func NewLongport(client *fetcher.LongportClient, log logrus.FieldLogger) *Longport {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Longport{client: client, log: log.WithField("component", "names")}
}

func (l *Longport) Names(ctx context.Context, _ market.Market, symbols []string) map[string]string {
	if len(symbols) == 0 {
		return map[string]string{}
	}
	got, err := l.client.Names(ctx, symbols)
	if err != nil {
		l.log.WithError(err).Warn("长桥名称查询失败")
		return map[string]string{}
	}
	return got
}

// Chain 依次查询，前者优先，后者只补缺
type Chain []Resolver

func (c Chain) Names(ctx context.Context, m market.Market, symbols []string) map[string]string {
	out := make(map[string]string, len(symbols))
	pending := symbols
	for _, r := range c {
		if len(pending) == 0 {
			break
		}
		for sym, n := range r.Names(ctx, m, pending) {
			if n != "" {
				out[sym] = n
			}
		}
		next := pending[:0:0]
		for _, sym := range pending {
			if _, ok := out[sym]; !ok {
				next = append(next, sym)
			}
		}
		pending = next
	}
	return out
}
