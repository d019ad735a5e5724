// Package display 把价格快照渲染成带本地化名称的文本
package display

import (
	"context"
	"strings"

	"astock/market"
	"astock/model"
	"astock/names"
)

// Formatter 价格快照格式化
type Formatter struct {
	names names.Resolver
}

func NewFormatter(r names.Resolver) *Formatter {
	if r == nil {
		r = names.Static{}
	}
	return &Formatter{names: r}
}

// Format 每个代码一行，保持快照的插入顺序：
//
//	600519.SH (贵州茅台): 1700.0
//
// 查不到名称时省略括号；空快照返回空字符串
func (f *Formatter) Format(ctx context.Context, snap model.PriceSnapshot, m market.Market) string {
	if snap.Len() == 0 {
		return ""
	}
	byCode := f.names.Names(ctx, m, snap.Symbols())

	lines := make([]string, 0, snap.Len())
	for _, e := range snap.Entries() {
		label := e.Symbol
		if n := byCode[e.Symbol]; n != "" {
			label += " (" + n + ")"
		}
		lines = append(lines, label+": "+model.FormatPrice(e.Value))
	}
	return strings.Join(lines, "\n")
}
