package pagination

import (
	"errors"
	"testing"

	"github.com/mirekli/commgraph/store/types"
)

func TestStrict(t *testing.T) {
	cases := []struct {
		name       string
		page, lim  string
		wantPage   int
		wantLimit  int
		wantSkip   int
		wantErrMsg string
	}{
		{name: "默认值", page: "", lim: "", wantPage: 1, wantLimit: 20, wantSkip: 0},
		{name: "正常窗口", page: "3", lim: "10", wantPage: 3, wantLimit: 10, wantSkip: 20},
		{name: "页码为零", page: "0", lim: "20", wantErrMsg: "Invalid page number"},
		{name: "页码为负", page: "-2", lim: "20", wantErrMsg: "Invalid page number"},
		{name: "页码非数字", page: "abc", lim: "20", wantErrMsg: "Invalid page number"},
		{name: "条数为零", page: "1", lim: "0", wantErrMsg: "Invalid limit"},
		{name: "条数为负", page: "1", lim: "-5", wantErrMsg: "Invalid limit"},
		{name: "条数非数字取默认", page: "1", lim: "xyz", wantPage: 1, wantLimit: 20, wantSkip: 0},
		{name: "条数超限静默钳制", page: "2", lim: "9999", wantPage: 2, wantLimit: 100, wantSkip: 100},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, err := Strict(c.page, c.lim, 20, 100)
			if c.wantErrMsg != "" {
				if err == nil {
					t.Fatalf("应返回错误 %q", c.wantErrMsg)
				}
				var pe *types.ParameterError
				if !errors.As(err, &pe) {
					t.Fatalf("错误类型应为 ParameterError, 实际 %T", err)
				}
				if pe.Msg != c.wantErrMsg {
					t.Errorf("错误消息 = %q, 期望 %q", pe.Msg, c.wantErrMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("不应返回错误: %v", err)
			}
			if w.Page != c.wantPage || w.Limit != c.wantLimit || w.Skip != c.wantSkip {
				t.Errorf("窗口 = %+v, 期望 page=%d limit=%d skip=%d", w, c.wantPage, c.wantLimit, c.wantSkip)
			}
		})
	}
}

func TestLenient_NeverFails(t *testing.T) {
	cases := []struct {
		page, lim string
		wantPage  int
		wantLimit int
	}{
		{"", "", 1, 50},
		{"0", "20", 1, 20},   // 非法页码回退到 1
		{"-3", "20", 1, 20},  // 负页码同样回退
		{"abc", "20", 1, 20}, // 非数字回退
		{"2", "0", 2, 1},     // 条数下越界钳到 1
		{"2", "-9", 2, 1},
		{"2", "500", 2, 100}, // 上越界钳到 maxLimit
	}

	for _, c := range cases {
		w := Lenient(c.page, c.lim, 50, 100)
		if w.Page != c.wantPage || w.Limit != c.wantLimit {
			t.Errorf("Lenient(%q, %q) = %+v, 期望 page=%d limit=%d", c.page, c.lim, w, c.wantPage, c.wantLimit)
		}
		if w.Skip != (w.Page-1)*w.Limit {
			t.Errorf("skip 不变量被破坏: %+v", w)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 20, 0}, // totalPages == 0 当且仅当 total == 0
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{30180, 20, 1509}, // 深分页场景
		{7, 1, 7},
	}

	for _, c := range cases {
		if got := TotalPages(c.total, c.limit); got != c.want {
			t.Errorf("TotalPages(%d, %d) = %d, 期望 %d", c.total, c.limit, got, c.want)
		}
	}
}

func TestMeta_DeepPageScenario(t *testing.T) {
	w, err := Strict("1509", "20", 20, 100)
	if err != nil {
		t.Fatal(err)
	}
	if w.Skip != 30160 {
		t.Fatalf("skip = %d, 期望 30160", w.Skip)
	}

	meta := w.Meta(30180)
	if meta.Page != 1509 || meta.Limit != 20 || meta.Total != 30180 || meta.TotalPages != 1509 {
		t.Errorf("分页块 = %+v", meta)
	}
}
