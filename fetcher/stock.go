package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"astock/model"
)

const (
	// 新浪股票行情接口
	sinaStockURL = "http://hq.sinajs.cn/list=%s"
)

var sinaLineRe = regexp.MustCompile(`var hq_str_(\w+)="([^"]*)"`)

// StockFetcher 股票实时行情拉取器
type StockFetcher struct {
	client *http.Client
	url    string
}

// NewStockFetcher 创建股票数据拉取器
func NewStockFetcher(timeout time.Duration) *StockFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &StockFetcher{
		client: &http.Client{Timeout: timeout},
		url:    sinaStockURL,
	}
}

// WithURL 替换接口地址（含一个 %s 占位符）
func (f *StockFetcher) WithURL(url string) *StockFetcher {
	f.url = url
	return f
}

// Fetch 拉取多只股票的实时行情，codes 为新浪代码 (sh600519)
func (f *StockFetcher) Fetch(ctx context.Context, codes []string) ([]*model.StockQuote, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	url := fmt.Sprintf(f.url, strings.Join(codes, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Referer", "http://finance.sina.com.cn/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("新浪行情 http %d", resp.StatusCode)
	}

	// 新浪返回GBK编码
	reader := transform.NewReader(resp.Body, simplifiedchinese.GBK.NewDecoder())
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	return parseSinaQuotes(string(body)), nil
}

// parseSinaQuotes 解析新浪股票数据
// 格式: var hq_str_sh600000="浦发银行,11.85,11.83,11.80,11.89,11.77,11.79,11.80,46778853,552469367.00,...";
func parseSinaQuotes(data string) []*model.StockQuote {
	var quotes []*model.StockQuote
	for _, match := range sinaLineRe.FindAllStringSubmatch(data, -1) {
		if len(match) < 3 || match[2] == "" {
			continue // 无数据（停牌/代码不存在）
		}
		quote, err := parseSinaLine(match[1], match[2])
		if err != nil {
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes
}

// parseSinaLine 解析单行股票数据
// 字段顺序：名称,今开,昨收,当前价,最高,最低,买一价,卖一价,成交量,成交额,...(五档)...,日期,时间
func parseSinaLine(code, content string) (*model.StockQuote, error) {
	fields := strings.Split(content, ",")
	if len(fields) < 32 {
		return nil, fmt.Errorf("字段数量不足: %d", len(fields))
	}

	return &model.StockQuote{
		Code:      code,
		Name:      strings.TrimSpace(fields[0]),
		Open:      parseFloat(fields[1]),
		PreClose:  parseFloat(fields[2]),
		Price:     parseFloat(fields[3]),
		High:      parseFloat(fields[4]),
		Low:       parseFloat(fields[5]),
		Volume:    parseInt(fields[8]),
		Amount:    parseFloat(fields[9]),
		Date:      fields[30],
		Time:      fields[31],
		UpdatedAt: time.Now(),
	}, nil
}

// parseFloat 解析浮点数
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// parseInt 解析整数
func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
