package coerce

import (
	"reflect"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

func TestValue_TemporalWrappers(t *testing.T) {
	base := time.Date(2023, 5, 7, 9, 4, 2, 0, time.UTC)

	cases := []struct {
		name string
		in   any
		want any
	}{
		{"date", dbtype.Date(base), "2023-05-07"},
		{"local_datetime", dbtype.LocalDateTime(base), "2023-05-07T09:04:02"},
		{"time", dbtype.Time(base), "09:04:02"},
		{"local_time", dbtype.LocalTime(base), "09:04:02"},
		{"datetime", base, "2023-05-07T09:04:02Z"},
	}

	for _, c := range cases {
		if got := Value(c.in); got != c.want {
			t.Errorf("%s: Value = %v, 期望 %v", c.name, got, c.want)
		}
	}
}

func TestValue_ZeroPadding(t *testing.T) {
	d := dbtype.Date(time.Date(800, 1, 2, 0, 0, 0, 0, time.UTC))
	if got := Value(d); got != "0800-01-02" {
		t.Errorf("分量应零填充: %v", got)
	}
}

func TestValue_DateTimeNormalizedToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	in := time.Date(2023, 5, 7, 8, 0, 0, 0, loc)
	if got := Value(in); got != "2023-05-07T00:00:00Z" {
		t.Errorf("datetime 应先归一到 UTC: %v", got)
	}
}

func TestValue_PassThrough(t *testing.T) {
	cases := []any{
		nil,
		int64(42),
		int64(1) << 60, // 超过 2^53 的整数原样保留
		3.14,
		"already-a-string",
		true,
	}
	for _, c := range cases {
		if got := Value(c); !reflect.DeepEqual(got, c) {
			t.Errorf("Value(%v) = %v, 应原样透传", c, got)
		}
	}
}

func TestValue_Nested(t *testing.T) {
	base := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	in := map[string]any{
		"id":    "m1",
		"count": int64(3),
		"at":    dbtype.LocalDateTime(base),
		"tags":  []any{"a", dbtype.Date(base), nil},
		"inner": map[string]any{
			"deep": []any{map[string]any{"ts": base}},
		},
	}

	want := map[string]any{
		"id":    "m1",
		"count": int64(3),
		"at":    "2024-12-31T23:59:59",
		"tags":  []any{"a", "2024-12-31", nil},
		"inner": map[string]any{
			"deep": []any{map[string]any{"ts": "2024-12-31T23:59:59Z"}},
		},
	}

	got := Value(in)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("嵌套结构规范化不符:\n got  %#v\n want %#v", got, want)
	}

	// 输入不应被改动
	if _, ok := in["at"].(dbtype.LocalDateTime); !ok {
		t.Error("Value 不应原地修改输入")
	}
}

func TestValue_Idempotent(t *testing.T) {
	base := time.Date(2023, 5, 7, 9, 4, 2, 0, time.UTC)
	inputs := []any{
		dbtype.Date(base),
		dbtype.LocalDateTime(base),
		base,
		map[string]any{"at": dbtype.Date(base), "n": int64(1), "list": []any{base}},
		nil,
		"plain",
	}

	for _, in := range inputs {
		once := Value(in)
		twice := Value(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("不满足幂等性: 一次 %#v, 两次 %#v", once, twice)
		}
	}
}

func TestValue_Node(t *testing.T) {
	n := dbtype.Node{
		Labels: []string{"User"},
		Props: map[string]any{
			"id":      "alice",
			"created": dbtype.Date(time.Date(2020, 2, 2, 0, 0, 0, 0, time.UTC)),
		},
	}
	got, ok := Value(n).(map[string]any)
	if !ok {
		t.Fatalf("节点应展开为属性表, 实际 %T", Value(n))
	}
	if got["created"] != "2020-02-02" {
		t.Errorf("节点属性应被规范化: %v", got["created"])
	}
}

func TestComponentValidation(t *testing.T) {
	bad := []struct {
		y, m, d int
	}{
		{2023, 0, 1},
		{2023, 13, 1},
		{2023, 1, 0},
		{2023, 1, 32},
		{-1, 1, 1},
	}
	for _, c := range bad {
		if _, ok := isoDate(c.y, c.m, c.d); ok {
			t.Errorf("isoDate(%d, %d, %d) 应校验失败", c.y, c.m, c.d)
		}
	}

	if _, ok := isoTime(24, 0, 0); ok {
		t.Error("isoTime 小时越界应失败")
	}
	if _, ok := isoTime(0, 60, 0); ok {
		t.Error("isoTime 分钟越界应失败")
	}
	if _, ok := isoTime(0, 0, 60); ok {
		t.Error("isoTime 秒越界应失败")
	}

	if s, ok := isoDateTime(2023, 5, 7, 9, 4, 2); !ok || s != "2023-05-07T09:04:02" {
		t.Errorf("isoDateTime 合法分量拼装错误: %q %v", s, ok)
	}
}
