package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mirekli/commgraph/internal/pagination"
	"github.com/mirekli/commgraph/store/types"
	"github.com/mirekli/commgraph/web/transport"
)

// GetUsers 处理用户列表请求。宽松分页策略：非法页码静默回退。
// 列表端点在做任何工作之前先确认图库可用。
func (a *API) GetUsers(c *gin.Context) {
	ctx := c.Request.Context()

	if err := a.Store.Ping(ctx); err != nil {
		transport.Fail(c, "users.list", err)
		return
	}

	window := pagination.Lenient(c.Query("page"), c.Query("limit"), defaultUserLimit, maxListLimit)

	list, err := a.Store.GetUsers(ctx, types.UserQuery{
		Keyword: c.Query("keyword"),
		Limit:   window.Limit,
		Offset:  window.Skip,
	})
	if err != nil {
		transport.Fail(c, "users.list", err)
		return
	}

	list.Pagination = window.Meta(list.Pagination.Total)
	transport.SendCachable(c, a.cacheEnabled(), list)
}

// GetUserByID 处理单个用户查询。
func (a *API) GetUserByID(c *gin.Context) {
	user, err := a.Store.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		transport.Fail(c, "users.byID", err)
		return
	}
	transport.SendSuccess(c, user)
}
