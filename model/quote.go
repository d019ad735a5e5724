package model

import "time"

// StockQuote A股实时报价（新浪行情）
type StockQuote struct {
	Code      string    `json:"code"`      // 新浪代码 (sh600000, sz000001)
	Name      string    `json:"name"`      // 股票名称
	Open      float64   `json:"open"`      // 今开
	PreClose  float64   `json:"pre_close"` // 昨收
	Price     float64   `json:"price"`     // 当前价
	High      float64   `json:"high"`      // 最高
	Low       float64   `json:"low"`       // 最低
	Volume    int64     `json:"volume"`    // 成交量（股）
	Amount    float64   `json:"amount"`    // 成交额（元）
	Date      string    `json:"date"`      // 日期
	Time      string    `json:"time"`      // 时间
	UpdatedAt time.Time `json:"updated_at"`
}

// Bar 日线
type Bar struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Open   float64 `json:"open"`
	Close  float64 `json:"close"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume int64   `json:"volume"`
}
