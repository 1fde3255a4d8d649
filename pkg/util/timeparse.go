package util

import (
	"strings"
	"time"
)

// iso8601Layouts 按从精确到宽松的顺序排列。
var iso8601Layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISOTime 解析一个 ISO-8601 时间字符串。
// 支持纯日期（YYYY-MM-DD）和完整时间戳（可带小数秒与 Z 后缀），
// 无时区信息时按 UTC 处理。
func ParseISOTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range iso8601Layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EndOfDay 把纯日期形式的终点扩展到当日最后一纳秒，
// 使 dateTo=2023-01-31 能包含当天的消息。
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// IsDateOnly 判断输入是否为纯日期（不含时间部分）。
func IsDateOnly(s string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return err == nil
}
