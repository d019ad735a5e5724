package market

import (
	"fmt"
	"strings"
)

// Market 市场标识
type Market string

const (
	CN Market = "cn" // A股（沪深北）
	US Market = "us" // 美股
)

// CashKey 持仓快照中表示可用现金的保留键
const CashKey = "CASH"

// ParseMarket 解析市场标识，空值视为 A股
func ParseMarket(s string) (Market, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cn", "a", "astock":
		return CN, nil
	case "us":
		return US, nil
	}
	return "", fmt.Errorf("未知的市场: %s", s)
}

// Exchange 交易所后缀
type Exchange string

const (
	SSE  Exchange = "SH" // 上交所
	SZSE Exchange = "SZ" // 深交所
	BSE  Exchange = "BJ" // 北交所
	USX  Exchange = "US"
)

// Symbol 带交易所后缀的证券代码，如 600519.SH
type Symbol struct {
	Code     string
	Exchange Exchange
}

// ParseSymbol 解析 "600519.SH" / "aapl.us" 形式的代码
func ParseSymbol(s string) (Symbol, error) {
	raw := strings.TrimSpace(s)
	i := strings.LastIndex(raw, ".")
	if i <= 0 || i == len(raw)-1 {
		return Symbol{}, fmt.Errorf("股票代码格式错误: %s", s)
	}
	code := strings.ToUpper(raw[:i])
	ex := Exchange(strings.ToUpper(raw[i+1:]))
	switch ex {
	case SSE, SZSE, BSE:
		if len(code) != 6 {
			return Symbol{}, fmt.Errorf("A股代码应为6位数字: %s", s)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				return Symbol{}, fmt.Errorf("A股代码应为6位数字: %s", s)
			}
		}
	case USX:
	default:
		return Symbol{}, fmt.Errorf("未知的交易所后缀: %s", s)
	}
	return Symbol{Code: code, Exchange: ex}, nil
}

func (s Symbol) String() string {
	return s.Code + "." + string(s.Exchange)
}

// Market 返回代码所属市场
func (s Symbol) Market() Market {
	if s.Exchange == USX {
		return US
	}
	return CN
}

// SinaCode 转换为新浪行情代码: 600519.SH -> sh600519
func (s Symbol) SinaCode() (string, error) {
	switch s.Exchange {
	case SSE, SZSE, BSE:
		return strings.ToLower(string(s.Exchange)) + s.Code, nil
	}
	return "", fmt.Errorf("新浪接口不支持: %s", s)
}

// EastMoneySecID 转换为东方财富 secid: 600519.SH -> 1.600519, 000001.SZ -> 0.000001
func (s Symbol) EastMoneySecID() (string, error) {
	switch s.Exchange {
	case SSE:
		return "1." + s.Code, nil
	case SZSE, BSE:
		return "0." + s.Code, nil
	}
	return "", fmt.Errorf("东方财富接口不支持: %s", s)
}
