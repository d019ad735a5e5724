package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"astock/model"
)

const (
	// 东方财富日K接口：secid / end(YYYYMMDD) / lmt；fqt=0 不复权
	eastMoneyKLineURL = "https://push2his.eastmoney.com/api/qt/stock/kline/get?secid=%s&fields1=f1,f2,f3,f4,f5,f6&fields2=f51,f52,f53,f54,f55,f56,f57&klt=101&fqt=0&end=%s&lmt=%d"
)

// KLineFetcher K线数据拉取器
type KLineFetcher struct {
	client *http.Client
	url    string
}

// NewKLineFetcher 创建K线数据拉取器
func NewKLineFetcher(timeout time.Duration) *KLineFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &KLineFetcher{
		client: &http.Client{Timeout: timeout},
		url:    eastMoneyKLineURL,
	}
}

// WithURL 替换接口地址（依次含 secid/end/lmt 三个占位符）
func (f *KLineFetcher) WithURL(url string) *KLineFetcher {
	f.url = url
	return f
}

// FetchStockKLine 获取截止 end（含）的最近 limit 根日K
// secid: 东方财富代码（如 1.600519, 0.000001）; end: YYYYMMDD
func (f *KLineFetcher) FetchStockKLine(ctx context.Context, secid, end string, limit int) ([]model.Bar, error) {
	url := fmt.Sprintf(f.url, secid, end, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://quote.eastmoney.com/")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("东方财富 http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	return parseStockKLine(body)
}

// parseStockKLine 解析股票K线数据，data 为 null 时返回空
func parseStockKLine(data []byte) ([]model.Bar, error) {
	var result struct {
		Data *struct {
			Klines []string `json:"klines"`
		} `json:"data"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("解析K线失败: %w", err)
	}
	if result.Data == nil {
		return nil, nil
	}

	bars := make([]model.Bar, 0, len(result.Data.Klines))
	for _, line := range result.Data.Klines {
		// 格式: 日期,开盘,收盘,最高,最低,成交量,成交额
		parts := strings.Split(line, ",")
		if len(parts) < 6 {
			continue
		}

		open, _ := strconv.ParseFloat(parts[1], 64)
		close, _ := strconv.ParseFloat(parts[2], 64)
		high, _ := strconv.ParseFloat(parts[3], 64)
		low, _ := strconv.ParseFloat(parts[4], 64)
		volume, _ := strconv.ParseInt(parts[5], 10, 64)

		bars = append(bars, model.Bar{
			Date:   parts[0],
			Open:   open,
			Close:  close,
			High:   high,
			Low:    low,
			Volume: volume,
		})
	}

	return bars, nil
}
