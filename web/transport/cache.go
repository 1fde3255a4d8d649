package transport

import (
	"fmt"
	"net/http"

	"github.com/cespare/xxhash"
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SendCachable 为确定性的列表响应实现条件缓存。
//
// 校验值是序列化响应体的定长内容哈希（无碰撞抗性要求，正常载荷变化下
// 唯一即可）。客户端带来的 If-None-Match 与之相同时返回 304 空体加原校验值，
// 否则返回 200 全量体加新校验值。数据查询总是先执行，哈希由新鲜响应体算出，
// 底层数据一旦变化，下一个请求立即拿到新校验值。
//
// enabled 为 false 时退化为普通 JSON 响应：不算哈希，不做条件判断。
// 只允许在确认成功的响应体上调用，错误路径走 transport.Fail。
func SendCachable(c *gin.Context, enabled bool, data interface{}) {
	if !enabled {
		SendSuccess(c, data)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		SendError(c, http.StatusInternalServerError, "Response serialization failed", err.Error())
		return
	}

	validator := fmt.Sprintf("%q", fmt.Sprintf("%016x", xxhash.Sum64(body)))
	c.Header("ETag", validator)

	if match := c.GetHeader("If-None-Match"); match != "" && match == validator {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
