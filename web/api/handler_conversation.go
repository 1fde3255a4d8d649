package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mirekli/commgraph/internal/pagination"
	"github.com/mirekli/commgraph/store/types"
	"github.com/mirekli/commgraph/web/transport"
)

// GetConversations 处理会话列表请求。严格分页策略：
// page=0、负数或非数字一律 400，limit 下越界 400，上越界静默钳制。
func (a *API) GetConversations(c *gin.Context) {
	ctx := c.Request.Context()

	if err := a.Store.Ping(ctx); err != nil {
		transport.Fail(c, "conversations.list", err)
		return
	}

	window, err := pagination.Strict(c.Query("page"), c.Query("limit"), defaultListLimit, maxListLimit)
	if err != nil {
		transport.Fail(c, "conversations.list", err)
		return
	}

	kind := c.Query("kind")
	if kind != "" && kind != "direct" && kind != "group" {
		transport.BadRequest(c, "Invalid conversation kind")
		return
	}

	list, err := a.Store.GetConversations(ctx, types.ConversationQuery{
		Kind:   kind,
		Limit:  window.Limit,
		Offset: window.Skip,
	})
	if err != nil {
		transport.Fail(c, "conversations.list", err)
		return
	}

	list.Pagination = window.Meta(list.Pagination.Total)
	transport.SendCachable(c, a.cacheEnabled(), list)
}

// GetConversationByID 处理单个会话查询。
func (a *API) GetConversationByID(c *gin.Context) {
	conv, err := a.Store.GetConversationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		transport.Fail(c, "conversations.byID", err)
		return
	}
	transport.SendSuccess(c, conv)
}

// GetConversationMessages 处理会话内消息列表请求。宽松分页策略。
// messageType=all 或缺省时不做类型过滤。
func (a *API) GetConversationMessages(c *gin.Context) {
	ctx := c.Request.Context()

	if err := a.Store.Ping(ctx); err != nil {
		transport.Fail(c, "messages.list", err)
		return
	}

	window := pagination.Lenient(c.Query("page"), c.Query("limit"), defaultListLimit, maxListLimit)

	list, err := a.Store.GetConversationMessages(ctx, types.ConversationMessageQuery{
		ConversationID: c.Param("id"),
		MessageType:    c.Query("messageType"),
		Limit:          window.Limit,
		Offset:         window.Skip,
	})
	if err != nil {
		transport.Fail(c, "messages.list", err)
		return
	}

	list.Pagination = window.Meta(list.Pagination.Total)
	transport.SendCachable(c, a.cacheEnabled(), list)
}
