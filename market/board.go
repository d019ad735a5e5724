package market

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Board 板块
type Board string

const (
	BoardMain    Board = "main"    // 主板
	BoardSTAR    Board = "star"    // 科创板 688/689
	BoardChiNext Board = "chinext" // 创业板 300/301
	BoardBSE     Board = "bse"     // 北交所
	BoardForeign Board = "foreign"
)

// BoardOf 根据代码判断所属板块
func BoardOf(s Symbol) Board {
	switch s.Exchange {
	case BSE:
		return BoardBSE
	case SSE:
		if strings.HasPrefix(s.Code, "688") || strings.HasPrefix(s.Code, "689") {
			return BoardSTAR
		}
		return BoardMain
	case SZSE:
		if strings.HasPrefix(s.Code, "300") || strings.HasPrefix(s.Code, "301") {
			return BoardChiNext
		}
		return BoardMain
	}
	return BoardForeign
}

// IsSpecialTreatment 名称带 ST / *ST 前缀的风险警示股
func IsSpecialTreatment(name string) bool {
	n := strings.ToUpper(strings.TrimSpace(name))
	return strings.HasPrefix(n, "ST") || strings.HasPrefix(n, "*ST") || strings.HasPrefix(n, "S*ST")
}

// PriceLimit 返回涨跌停幅度（小数），美股无涨跌停返回 0
func PriceLimit(s Symbol, name string) decimal.Decimal {
	switch BoardOf(s) {
	case BoardForeign:
		return decimal.Zero
	case BoardSTAR, BoardChiNext:
		return decimal.RequireFromString("0.2")
	case BoardBSE:
		return decimal.RequireFromString("0.3")
	}
	if IsSpecialTreatment(name) {
		return decimal.RequireFromString("0.05")
	}
	return decimal.RequireFromString("0.1")
}
