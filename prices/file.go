package prices

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"astock/market"
	"astock/model"
)

// 日K数据文件字段
const (
	metaKey   = "Meta Data"
	symbolKey = "2. Symbol"
	seriesKey = "Time Series (Daily)"
)

var (
	openKeys  = []string{"1. buy price", "1. open"}
	highKeys  = []string{"2. high"}
	lowKeys   = []string{"3. low"}
	closeKeys = []string{"4. sell price", "4. close"}
	volKeys   = []string{"5. volume"}
)

// FileSource 从本地 JSONL 日K文件读取，每个市场一个文件，每行一个标的：
//
//	{"Meta Data":{"2. Symbol":"600519.SH"},"Time Series (Daily)":{"2024-06-03":{"1. buy price":"1705.0","4. sell price":"1720.0"}}}
//
// 每次调用都重新读取文件
type FileSource struct {
	files map[market.Market]string
}

func NewFileSource(files map[market.Market]string) *FileSource {
	return &FileSource{files: files}
}

func (s *FileSource) Bars(ctx context.Context, m market.Market, symbols []string, date string) (map[string][]model.Bar, error) {
	path, ok := s.files[m]
	if !ok || path == "" {
		return nil, fmt.Errorf("未配置 %s 市场的价格文件", m)
	}

	want := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		want[sym] = struct{}{}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开价格文件失败: %w", err)
	}
	defer f.Close()

	out := make(map[string][]model.Bar, len(symbols))
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1<<20), 64<<20)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || !gjson.Valid(line) {
			continue
		}
		doc := gjson.Parse(line)
		sym := field(field(doc, metaKey), symbolKey).String()
		if _, ok := want[sym]; !ok {
			continue
		}
		field(doc, seriesKey).ForEach(func(k, v gjson.Result) bool {
			d := k.String()
			if d > date {
				return true
			}
			out[sym] = append(out[sym], model.Bar{
				Date:   d,
				Open:   firstOf(v, openKeys).Float(),
				High:   firstOf(v, highKeys).Float(),
				Low:    firstOf(v, lowKeys).Float(),
				Close:  firstOf(v, closeKeys).Float(),
				Volume: firstOf(v, volKeys).Int(),
			})
			return true
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("读取价格文件失败: %w", err)
	}
	return out, nil
}

// field 按原样匹配键名（键中含空格与点号，不走 gjson 路径语法）
func field(obj gjson.Result, key string) gjson.Result {
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
			return false
		}
		return true
	})
	return found
}

func firstOf(obj gjson.Result, keys []string) gjson.Result {
	for _, k := range keys {
		if v := field(obj, k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}
