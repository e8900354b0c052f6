package utils

import (
	"time"
)

// DateLayout 全系统统一的日历日期格式
const DateLayout = "2006-01-02"

// DateString 返回 t 所在自然日的标准字符串
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate 解析标准日期字符串，返回当天零点（本地时区）
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return d, nil
}

// StartOfDay 返回 t 所在自然日的零点
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay 返回 t 所在自然日的最后一纳秒，redis 槽位 TTL 用
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfMonth 返回 t 所在月份 1 号零点，月度报表用
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
