package prompt

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astock/config"
	"astock/display"
	"astock/market"
	"astock/model"
)

type stubPrices struct {
	yesterdayOpen  map[string]string
	yesterdayClose map[string]string
	todayOpen      map[string]string
	err            error
	markets        []market.Market
}

func fill(date string, kind model.PriceKind, src map[string]string, symbols []string) model.PriceSnapshot {
	s := model.NewPriceSnapshot(date, kind)
	for _, sym := range symbols {
		if v, ok := src[sym]; ok {
			s.Set(sym, decimal.RequireFromString(v))
		}
	}
	return s
}

func (p *stubPrices) OpenPrices(_ context.Context, date string, symbols []string, m market.Market) (model.PriceSnapshot, error) {
	p.markets = append(p.markets, m)
	if p.err != nil {
		return model.PriceSnapshot{}, p.err
	}
	return fill(date, model.PriceOpen, p.todayOpen, symbols), nil
}

func (p *stubPrices) YesterdayOpenAndClose(_ context.Context, _ string, symbols []string, m market.Market) (model.PriceSnapshot, model.PriceSnapshot, error) {
	p.markets = append(p.markets, m)
	if p.err != nil {
		return model.PriceSnapshot{}, model.PriceSnapshot{}, p.err
	}
	return fill("2024-05-31", model.PriceOpen, p.yesterdayOpen, symbols),
		fill("2024-05-31", model.PriceClose, p.yesterdayClose, symbols), nil
}

type stubPositions struct {
	entries [][2]string
	err     error
	calls   int
}

func (p *stubPositions) TodayInitPosition(context.Context, string, string) (model.PositionSnapshot, error) {
	p.calls++
	if p.err != nil {
		return model.PositionSnapshot{}, p.err
	}
	s := model.NewPositionSnapshot("2024-05-31")
	for _, e := range p.entries {
		s.Set(e[0], decimal.RequireFromString(e[1]))
	}
	return s, nil
}

func scenario() (*stubPrices, *stubPositions) {
	return &stubPrices{
			yesterdayOpen:  map[string]string{"600519.SH": "1690.0"},
			yesterdayClose: map[string]string{"600519.SH": "1700.0"},
			todayOpen:      map[string]string{"600519.SH": "1705.0"},
		}, &stubPositions{
			entries: [][2]string{{"600519.SH", "100"}, {"CASH", "5000"}},
		}
}

func newAssembler(t *testing.T, opts Options, pp *stubPrices, pos *stubPositions) *Assembler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	a, err := NewAssembler(opts, pp, pos, display.NewFormatter(nil), logger)
	require.NoError(t, err)
	return a
}

var leftover = regexp.MustCompile(`\{[a-z_]+\}`)

func section(t *testing.T, text, header string) string {
	t.Helper()
	i := strings.Index(text, header)
	require.GreaterOrEqual(t, i, 0, header)
	rest := text[i+len(header):]
	if j := strings.Index(rest, "\n\n"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

func TestBuildScenario(t *testing.T) {
	pp, pos := scenario()
	a := newAssembler(t, Options{}, pp, pos)

	out, err := a.Build(context.Background(), "2024-06-03", "agent-1", []string{"600519.SH"})
	require.NoError(t, err)

	assert.Contains(t, section(t, out, "今日日期：\n"), "2024-06-03")
	positions := section(t, out, "CASH后的数字代表你的可用现金）：\n")
	assert.Contains(t, positions, "100")
	assert.Contains(t, positions, "5000")
	assert.Contains(t, section(t, out, "昨日收盘价格：\n"), "600519.SH (贵州茅台): 1700.0")
	assert.Contains(t, section(t, out, "今日买入价格：\n"), "600519.SH (贵州茅台): 1705.0")
	assert.Contains(t, section(t, out, "昨日收益情况：\n"), `"600519.SH": 1000.0`)

	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "当你认为任务完成时，输出\n"+StopSignal))
	assert.Contains(t, out, "100股的整数倍")
	assert.Contains(t, out, "T+1")
	assert.Contains(t, out, "ST股票：±5%")
	assert.Contains(t, out, "科创板/创业板：±20%")
	assert.Empty(t, leftover.FindAllString(out, -1))

	assert.Equal(t, []market.Market{market.CN, market.CN}, pp.markets)
}

func TestBuildLogsProfitTotal(t *testing.T) {
	pp, pos := scenario()
	pp.yesterdayOpen["600036.SH"] = "34.0"
	pp.yesterdayClose["600036.SH"] = "34.5"
	pos.entries = append(pos.entries, [2]string{"600036.SH", "200"})

	logger, hook := test.NewNullLogger()
	a, err := NewAssembler(Options{}, pp, pos, display.NewFormatter(nil), logger)
	require.NoError(t, err)

	_, err = a.Build(context.Background(), "2024-06-03", "agent-1", []string{"600519.SH", "600036.SH"})
	require.NoError(t, err)

	var total any
	for _, e := range hook.AllEntries() {
		if v, ok := e.Data["profit_total"]; ok {
			total = v
			assert.Equal(t, "2024-05-31", e.Data["price_date"])
		}
	}
	assert.Equal(t, "1100", total)
}

func TestBuildIsIdempotent(t *testing.T) {
	pp, pos := scenario()
	a := newAssembler(t, Options{}, pp, pos)
	ctx := context.Background()

	first, err := a.Build(ctx, "2024-06-03", "agent-1", []string{"600519.SH"})
	require.NoError(t, err)
	second, err := a.Build(ctx, "2024-06-03", "agent-1", []string{"600519.SH"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, pos.calls)
}

func TestBuildMissingSymbolStillRenders(t *testing.T) {
	pp, pos := scenario()
	a := newAssembler(t, Options{}, pp, pos)

	out, err := a.Build(context.Background(), "2024-06-03", "agent-1", []string{"600519.SH", "600036.SH"})
	require.NoError(t, err)
	assert.Empty(t, leftover.FindAllString(out, -1))
	assert.NotContains(t, section(t, out, "昨日收盘价格：\n"), "600036.SH")
	assert.Contains(t, section(t, out, "昨日收益情况：\n"), `"600036.SH": 0.0`)
	assert.Contains(t, out, StopSignal)
}

func TestBuildEmptyUniverse(t *testing.T) {
	pp, pos := scenario()
	a := newAssembler(t, Options{}, pp, pos)

	fields, err := a.Fields(context.Background(), "2024-06-03", "agent-1", []string{})
	require.NoError(t, err)
	assert.Equal(t, "", fields[FieldYesterdayClosePrice])
	assert.Equal(t, "", fields[FieldTodayBuyPrice])
	assert.Equal(t, "{}", fields[FieldYesterdayProfit])

	out, err := a.Build(context.Background(), "2024-06-03", "agent-1", []string{})
	require.NoError(t, err)
	assert.Contains(t, out, "2024-06-03")
	assert.Contains(t, out, StopSignal)
	assert.Empty(t, leftover.FindAllString(out, -1))
}

func TestBuildDefaultUniverse(t *testing.T) {
	pp, pos := scenario()
	a := newAssembler(t, Options{}, pp, pos)
	assert.Len(t, a.Universe(nil), 50)

	custom := newAssembler(t, Options{Universe: []string{"600519.SH"}}, pp, pos)
	assert.Equal(t, []string{"600519.SH"}, custom.Universe(nil))
	assert.Equal(t, []string{}, custom.Universe([]string{}))

	out, err := a.Build(context.Background(), "2024-06-03", "agent-1", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "600519.SH (贵州茅台): 1705.0")
}

func TestBuildMissingSignature(t *testing.T) {
	pp, pos := scenario()
	a := newAssembler(t, Options{}, pp, pos)

	_, err := a.Build(context.Background(), "2024-06-03", "", nil)
	assert.ErrorIs(t, err, config.ErrMissingSignature)
	assert.Empty(t, pp.markets)
	assert.Equal(t, 0, pos.calls)
}

func TestBuildRejectsBadDate(t *testing.T) {
	pp, pos := scenario()
	a := newAssembler(t, Options{}, pp, pos)

	_, err := a.Build(context.Background(), "06/03/2024", "agent-1", nil)
	assert.Error(t, err)
	assert.Empty(t, pp.markets)
}

func TestBuildPassesProviderErrorsThrough(t *testing.T) {
	boom := errors.New("price service down")
	pp, pos := scenario()
	pp.err = boom
	a := newAssembler(t, Options{}, pp, pos)

	_, err := a.Build(context.Background(), "2024-06-03", "agent-1", nil)
	assert.Same(t, boom, err)

	pp, pos = scenario()
	posErr := errors.New("position store down")
	pos.err = posErr
	a = newAssembler(t, Options{}, pp, pos)
	_, err = a.Build(context.Background(), "2024-06-03", "agent-1", nil)
	assert.Same(t, posErr, err)
}

func TestBuildMessages(t *testing.T) {
	pp, pos := scenario()
	a := newAssembler(t, Options{}, pp, pos)

	msgs, err := a.BuildMessages(context.Background(), "2024-06-03", "agent-1", []string{"600519.SH"})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, schema.System, msgs[0].Role)

	text, err := a.Build(context.Background(), "2024-06-03", "agent-1", []string{"600519.SH"})
	require.NoError(t, err)
	assert.Equal(t, text, msgs[0].Content)
}

func TestUSMarketTemplate(t *testing.T) {
	pp := &stubPrices{
		yesterdayClose: map[string]string{"AAPL.US": "190.5"},
		todayOpen:      map[string]string{"AAPL.US": "191.25"},
	}
	pos := &stubPositions{entries: [][2]string{{"CASH", "10000"}}}
	a := newAssembler(t, Options{Market: market.US}, pp, pos)

	out, err := a.Build(context.Background(), "2024-06-03", "agent-1", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL.US (Apple): 190.5")
	assert.NotContains(t, out, "T+1")
	assert.Contains(t, out, StopSignal)
	assert.Equal(t, market.US, pp.markets[0])
}
