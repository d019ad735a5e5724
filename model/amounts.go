package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Entry 代码与数值
type Entry struct {
	Symbol string          `json:"symbol"`
	Value  decimal.Decimal `json:"value"`
}

// Amounts 保持插入顺序的 代码->数值 映射
// 零值可直接使用
type Amounts struct {
	entries []Entry
	index   map[string]int
}

// Set 写入数值；已存在的键原位覆盖，不改变顺序
func (a *Amounts) Set(symbol string, v decimal.Decimal) {
	if a.index == nil {
		a.index = make(map[string]int)
	}
	if i, ok := a.index[symbol]; ok {
		a.entries[i].Value = v
		return
	}
	a.index[symbol] = len(a.entries)
	a.entries = append(a.entries, Entry{Symbol: symbol, Value: v})
}

func (a Amounts) Get(symbol string) (decimal.Decimal, bool) {
	i, ok := a.index[symbol]
	if !ok {
		return decimal.Zero, false
	}
	return a.entries[i].Value, true
}

func (a Amounts) Len() int { return len(a.entries) }

// Entries 按插入顺序返回副本
func (a Amounts) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Symbols 按插入顺序返回键
func (a Amounts) Symbols() []string {
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Symbol)
	}
	return out
}

// render 输出 {"600519.SH": 100, "CASH": 5000} 形式
func (a Amounts) render(format func(decimal.Decimal) string) string {
	var b strings.Builder
	b.WriteString("{")
	for i, e := range a.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`"`)
		b.WriteString(e.Symbol)
		b.WriteString(`": `)
		b.WriteString(format(e.Value))
	}
	b.WriteString("}")
	return b.String()
}

// FormatPrice 价格格式：整数也保留一位小数 (1700 -> 1700.0, 12.345 -> 12.345)
func FormatPrice(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatQuantity 数量格式：原样输出 (100, 5000, 5000.5)
func FormatQuantity(d decimal.Decimal) string {
	return d.String()
}
