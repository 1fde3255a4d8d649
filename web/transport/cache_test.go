package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(ifNoneMatch string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations", nil)
	if ifNoneMatch != "" {
		req.Header.Set("If-None-Match", ifNoneMatch)
	}
	c.Request = req
	return c, w
}

func TestSendCachable_StableValidator(t *testing.T) {
	payload := map[string]any{"total": 3, "items": []string{"a", "b", "c"}}

	c1, w1 := newTestContext("")
	SendCachable(c1, true, payload)
	c2, w2 := newTestContext("")
	SendCachable(c2, true, payload)

	et1 := w1.Header().Get("ETag")
	et2 := w2.Header().Get("ETag")
	if et1 == "" {
		t.Fatal("成功的列表响应应携带 ETag")
	}
	if et1 != et2 {
		t.Errorf("相同载荷的校验值应一致: %q != %q", et1, et2)
	}
	if w1.Code != http.StatusOK {
		t.Errorf("首个请求状态 = %d", w1.Code)
	}
	if w1.Body.Len() == 0 {
		t.Error("200 响应体不应为空")
	}
}

func TestSendCachable_NotModified(t *testing.T) {
	payload := map[string]any{"total": 1}

	c1, w1 := newTestContext("")
	SendCachable(c1, true, payload)
	etag := w1.Header().Get("ETag")

	c2, w2 := newTestContext(etag)
	SendCachable(c2, true, payload)
	// CreateTestContext 绕过了 engine，需手动触发 gin 延迟写入的状态码
	// （生产路径由 handleHTTPRequest 结束时的 WriteHeaderNow 完成）。
	c2.Writer.WriteHeaderNow()

	if w2.Code != http.StatusNotModified {
		t.Fatalf("匹配的 If-None-Match 应返回 304, 实际 %d", w2.Code)
	}
	if w2.Body.Len() != 0 {
		t.Error("304 响应体必须为空")
	}
	if w2.Header().Get("ETag") != etag {
		t.Errorf("304 应回传原校验值: %q != %q", w2.Header().Get("ETag"), etag)
	}
}

func TestSendCachable_MismatchReturnsFullBody(t *testing.T) {
	c, w := newTestContext(`"0000000000000000"`)
	SendCachable(c, true, map[string]any{"total": 2})

	if w.Code != http.StatusOK {
		t.Fatalf("不匹配的校验值应返回 200, 实际 %d", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("200 响应体不应为空")
	}
	if w.Header().Get("ETag") == `"0000000000000000"` {
		t.Error("应生成新的校验值")
	}
}

func TestSendCachable_ChangedPayloadChangesValidator(t *testing.T) {
	c1, w1 := newTestContext("")
	SendCachable(c1, true, map[string]any{"total": 1})
	c2, w2 := newTestContext("")
	SendCachable(c2, true, map[string]any{"total": 2})

	if w1.Header().Get("ETag") == w2.Header().Get("ETag") {
		t.Error("载荷变化后校验值应不同")
	}
}

func TestSendCachable_Disabled(t *testing.T) {
	c, w := newTestContext(`"whatever"`)
	SendCachable(c, false, map[string]any{"total": 1})

	if w.Code != http.StatusOK {
		t.Errorf("关闭缓存后应直接返回 200, 实际 %d", w.Code)
	}
	if w.Header().Get("ETag") != "" {
		t.Error("关闭缓存后不应计算校验值")
	}
}

func TestSendError_StripsValidator(t *testing.T) {
	c, w := newTestContext("")
	// 先人为设置 ETag，模拟在出错前已写入校验头的路径
	c.Header("ETag", `"deadbeefdeadbeef"`)
	SendError(c, http.StatusInternalServerError, "Query failed", "boom")

	if w.Header().Get("ETag") != "" {
		t.Error("非 2xx 响应绝不允许携带缓存校验头")
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("状态 = %d", w.Code)
	}
}
