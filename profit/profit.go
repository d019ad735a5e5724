// Package profit 计算上一交易日持仓收益
package profit

import (
	"github.com/shopspring/decimal"

	"astock/model"
)

// Places 收益保留的小数位
const Places = 4

// Calculate 对 symbols 中的每个代码计算 (卖出价 - 买入价) * 持股数。
// 缺少任一价格或无持仓的代码记为 0，不报错；结果顺序与 symbols 一致。
// 纯函数：相同输入得到相同输出。
func Calculate(date string, buy, sell model.PriceSnapshot, position model.PositionSnapshot, symbols []string) model.ProfitReport {
	report := model.ProfitReport{Date: date, Total: decimal.Zero}
	for _, sym := range symbols {
		shares := position.Shares(sym)
		b, okBuy := buy.Get(sym)
		s, okSell := sell.Get(sym)

		p := decimal.Zero
		switch {
		case !shares.IsPositive():
		case !okBuy || !okSell:
			report.Missing = append(report.Missing, sym)
		default:
			p = s.Sub(b).Mul(shares).Round(Places)
		}
		report.Set(sym, p)
		report.Total = report.Total.Add(p)
	}
	return report
}
