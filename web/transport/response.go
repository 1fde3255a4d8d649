package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SendSuccess 以 200 OK 直接返回 JSON 载荷。
// 用于不参与条件缓存的端点（单实体查询、双人分析）。
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
