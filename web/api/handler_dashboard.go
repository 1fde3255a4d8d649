package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mirekli/commgraph/web/transport"
)

// GetDashboard 获取总览数据。
func (a *API) GetDashboard(c *gin.Context) {
	data, err := a.Store.GetDashboard(c.Request.Context())
	if err != nil {
		transport.Fail(c, "dashboard", err)
		return
	}
	transport.SendSuccess(c, data)
}
