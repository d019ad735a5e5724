// Package prompt 组装交易智能体的系统提示词
package prompt

import (
	"context"

	"github.com/cloudwego/eino/schema"
	"github.com/sirupsen/logrus"

	"astock/config"
	"astock/display"
	"astock/market"
	"astock/positions"
	"astock/prices"
	"astock/profit"
	"astock/trading"
)

// Options 组装器配置
type Options struct {
	// Market 价格查询与模板选择所用的市场，默认 A股
	Market market.Market
	// Universe 未显式传入标的时使用的标的池，nil 时取市场默认标的池
	Universe []string
}

// Assembler 系统提示词组装器；无状态，可重复调用
type Assembler struct {
	market    market.Market
	universe  []string
	prices    prices.Provider
	positions positions.Provider
	display   *display.Formatter
	tpl       *Template
	log       logrus.FieldLogger
}

func NewAssembler(opts Options, pp prices.Provider, pos positions.Provider, f *display.Formatter, log logrus.FieldLogger) (*Assembler, error) {
	m := opts.Market
	if m == "" {
		m = market.CN
	}
	tpl, err := TemplateFor(m)
	if err != nil {
		return nil, err
	}
	if f == nil {
		f = display.NewFormatter(nil)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Assembler{
		market:    m,
		universe:  opts.Universe,
		prices:    pp,
		positions: pos,
		display:   f,
		tpl:       tpl,
		log:       log.WithField("component", "assembler"),
	}, nil
}

// Market 组装器所用市场
func (a *Assembler) Market() market.Market { return a.market }

// Universe 解析标的池：symbols 为 nil 时使用默认标的池，空切片表示空标的池
func (a *Assembler) Universe(symbols []string) []string {
	if symbols != nil {
		return symbols
	}
	if a.universe != nil {
		return a.universe
	}
	return market.DefaultUniverse(a.market)
}

// Fields 拉取持仓与价格并计算模板取值。数据源返回的错误原样返回。
func (a *Assembler) Fields(ctx context.Context, date, signature string, symbols []string) (Fields, error) {
	if signature == "" {
		return nil, config.ErrMissingSignature
	}
	if _, err := trading.ParseDate(date); err != nil {
		return nil, err
	}
	symbols = a.Universe(symbols)

	a.log.WithFields(logrus.Fields{
		"signature": signature,
		"date":      date,
		"market":    a.market,
		"symbols":   len(symbols),
	}).Info("组装系统提示词")

	yesterdayBuy, yesterdaySell, err := a.prices.YesterdayOpenAndClose(ctx, date, symbols, a.market)
	if err != nil {
		return nil, err
	}
	todayBuy, err := a.prices.OpenPrices(ctx, date, symbols, a.market)
	if err != nil {
		return nil, err
	}
	position, err := a.positions.TodayInitPosition(ctx, date, signature)
	if err != nil {
		return nil, err
	}

	report := profit.Calculate(date, yesterdayBuy, yesterdaySell, position, symbols)
	if len(report.Missing) > 0 {
		a.log.WithField("symbols", report.Missing).Debug("持仓标的缺少昨日价格，收益按 0 计")
	}
	a.log.WithFields(logrus.Fields{
		"signature":    signature,
		"date":         date,
		"price_date":   yesterdaySell.Date,
		"profit_total": report.Total.String(),
	}).Info("昨日收益")

	return Fields{
		FieldDate:                date,
		FieldPositions:           position.String(),
		FieldYesterdayClosePrice: a.display.Format(ctx, yesterdaySell, a.market),
		FieldTodayBuyPrice:       a.display.Format(ctx, todayBuy, a.market),
		FieldYesterdayProfit:     report.String(),
		FieldStopSignal:          StopSignal,
	}, nil
}

// Build 返回完整的系统提示词文本
func (a *Assembler) Build(ctx context.Context, date, signature string, symbols []string) (string, error) {
	fields, err := a.Fields(ctx, date, signature, symbols)
	if err != nil {
		return "", err
	}
	return a.tpl.Render(ctx, fields)
}

// BuildMessages 以系统消息形式返回，交给智能体运行时
func (a *Assembler) BuildMessages(ctx context.Context, date, signature string, symbols []string) ([]*schema.Message, error) {
	fields, err := a.Fields(ctx, date, signature, symbols)
	if err != nil {
		return nil, err
	}
	return a.tpl.Messages(ctx, fields)
}
