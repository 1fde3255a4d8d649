// Package coerce 把图库返回的原生包装值递归转换为规范化的原始类型。
//
// bolt 整数在 Go 侧解码为 int64 并原样透传；JSON 消费方若以 IEEE double
// 读取，超过 2^53 的值会丢失精度，调用方按原样处理。
// 时间类包装值统一转换为零填充的 ISO-8601 字符串，分量越界时返回 nil
// 而不是拼出一个畸形字符串。
package coerce

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// Value 规范化任意图库返回值。完全函数：对任何输入都不会 panic，
// 且满足幂等性 Value(Value(x)) == Value(x)。
//
// 规则：
//   - dbtype.Date / dbtype.LocalDateTime / dbtype.Time / dbtype.LocalTime
//     以及携带时区的 time.Time（图库的 datetime）→ ISO-8601 字符串
//   - dbtype.Duration → ISO-8601 时段字符串
//   - dbtype.Node → 规范化后的属性表
//   - []any 逐元素映射，map[string]any 逐键递归
//   - nil 以及其余已是规范形态的值原样透传
func Value(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case dbtype.Date:
		tm := t.Time()
		if s, ok := isoDate(tm.Year(), int(tm.Month()), tm.Day()); ok {
			return s
		}
		return nil
	case dbtype.LocalDateTime:
		return localDateTimeString(t.Time())
	case dbtype.Time:
		return timeOfDayString(t.Time())
	case dbtype.LocalTime:
		return timeOfDayString(t.Time())
	case dbtype.Duration:
		return t.String()
	case time.Time:
		u := t.UTC()
		s := localDateTimeString(u)
		if s == nil {
			return nil
		}
		return s.(string) + "Z"
	case dbtype.Node:
		return Map(t.Props)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Value(e)
		}
		return out
	case map[string]any:
		return Map(t)
	default:
		return v
	}
}

// Map 规范化一个记录属性表，返回新表，不改动输入。
func Map(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Value(v)
	}
	return out
}

func localDateTimeString(t time.Time) any {
	if s, ok := isoDateTime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()); ok {
		return s
	}
	return nil
}

func timeOfDayString(t time.Time) any {
	if s, ok := isoTime(t.Hour(), t.Minute(), t.Second()); ok {
		return s
	}
	return nil
}

// isoDate 由年月日分量拼出 "YYYY-MM-DD"，分量越界时 ok 为 false。
func isoDate(year, month, day int) (string, bool) {
	if year < 0 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// isoTime 由时分秒分量拼出 "HH:MM:SS"。
func isoTime(hour, minute, second int) (string, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d:%02d", hour, minute, second), true
}

// isoDateTime 组合日期与时间分量，任一分量越界即失败。
func isoDateTime(year, month, day, hour, minute, second int) (string, bool) {
	d, ok := isoDate(year, month, day)
	if !ok {
		return "", false
	}
	t, ok := isoTime(hour, minute, second)
	if !ok {
		return "", false
	}
	return d + "T" + t, true
}
