package fetcher

import (
	"context"
	"errors"
	"time"

	lpconfig "github.com/longportapp/openapi-go/config"
	"github.com/longportapp/openapi-go/quote"

	"astock/model"
	"astock/trading"
)

// ErrLongportCredentials 未配置长桥凭证
var ErrLongportCredentials = errors.New("longport API credentials not configured")

// LongportCredentials 长桥 OpenAPI 凭证
type LongportCredentials struct {
	AppKey      string
	AppSecret   string
	AccessToken string
}

// LongportClient 长桥行情客户端（代码格式与本项目一致：600519.SH / AAPL.US）
type LongportClient struct {
	quoteCtx *quote.QuoteContext
}

func NewLongportClient(cred LongportCredentials) (*LongportClient, error) {
	if cred.AppKey == "" || cred.AppSecret == "" || cred.AccessToken == "" {
		return nil, ErrLongportCredentials
	}

	conf, err := lpconfig.New(lpconfig.WithConfigKey(cred.AppKey, cred.AppSecret, cred.AccessToken))
	if err != nil {
		return nil, err
	}

	quoteContext, err := quote.NewFromCfg(conf)
	if err != nil {
		return nil, err
	}

	return &LongportClient{quoteCtx: quoteContext}, nil
}

// Names 查询中文名称，返回 代码->名称
func (c *LongportClient) Names(ctx context.Context, symbols []string) (map[string]string, error) {
	if c.quoteCtx == nil {
		return nil, errors.New("quote context is nil")
	}
	infos, err := c.quoteCtx.StaticInfo(ctx, symbols)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(infos))
	for _, info := range infos {
		if info == nil || info.NameCn == "" {
			continue
		}
		out[info.Symbol] = info.NameCn
	}
	return out, nil
}

// DailyBars 最近 count 根不复权日K
func (c *LongportClient) DailyBars(ctx context.Context, symbol string, count int) ([]model.Bar, error) {
	if c.quoteCtx == nil {
		return nil, errors.New("quote context is nil")
	}
	sticks, err := c.quoteCtx.Candlesticks(ctx, symbol, quote.PeriodDay, int32(count), quote.AdjustTypeNo)
	if err != nil {
		return nil, err
	}
	bars := make([]model.Bar, 0, len(sticks))
	for _, stick := range sticks {
		if stick == nil {
			continue
		}
		open, _ := stick.Open.Float64()
		high, _ := stick.High.Float64()
		low, _ := stick.Low.Float64()
		close, _ := stick.Close.Float64()
		bars = append(bars, model.Bar{
			Date:   trading.TodayAt(time.Unix(stick.Timestamp, 0)),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: stick.Volume,
		})
	}
	return bars, nil
}

// Close 关闭行情长连接
func (c *LongportClient) Close() error {
	if c.quoteCtx == nil {
		return nil
	}
	return c.quoteCtx.Close()
}
