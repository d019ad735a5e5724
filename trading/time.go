package trading

import (
	"fmt"
	"time"
)

// 中国时区
var cst = time.FixedZone("CST", 8*3600)

// DateLayout 日期格式
const DateLayout = "2006-01-02"

// TimeRange 时间范围
type TimeRange struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// A股交易时间段
var stockTradingHours = []TimeRange{
	{9, 30, 11, 30}, // 上午 9:30-11:30
	{13, 0, 15, 0},  // 下午 13:00-15:00
}

// Today 当前北京时间日期
func Today() string {
	return TodayAt(time.Now())
}

// TodayAt 指定时刻对应的北京时间日期
func TodayAt(t time.Time) string {
	return t.In(cst).Format(DateLayout)
}

// ParseDate 解析 YYYY-MM-DD（北京时间零点）
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, cst)
	if err != nil {
		return time.Time{}, fmt.Errorf("日期格式错误(应为YYYY-MM-DD): %s", s)
	}
	return t, nil
}

// CompactDate 2024-06-03 -> 20240603
func CompactDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format("20060102"), nil
}

// IsStockTradingTime 判断当前是否为A股交易时间
func IsStockTradingTime() bool {
	return IsStockTradingTimeAt(time.Now())
}

// IsStockTradingTimeAt 判断指定时间是否为A股交易时间
func IsStockTradingTimeAt(t time.Time) bool {
	t = t.In(cst)

	// 检查是否为工作日（周一到周五）
	weekday := t.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return false
	}

	return isInTimeRanges(t, stockTradingHours)
}

// isInTimeRanges 检查时间是否在指定的时间范围内
func isInTimeRanges(t time.Time, ranges []TimeRange) bool {
	currentMinutes := t.Hour()*60 + t.Minute()

	for _, r := range ranges {
		startMinutes := r.StartHour*60 + r.StartMinute
		endMinutes := r.EndHour*60 + r.EndMinute
		if currentMinutes >= startMinutes && currentMinutes <= endMinutes {
			return true
		}
	}
	return false
}
