package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mirekli/commgraph/internal/pagination"
	"github.com/mirekli/commgraph/internal/pair"
	"github.com/mirekli/commgraph/pkg/util"
	"github.com/mirekli/commgraph/store/types"
	"github.com/mirekli/commgraph/web/transport"
)

// GetCommunication 处理双人交流分析请求。
// 标识对先规范化再查询，响应出口统一还原调用方顺序。
// 分析结果视为永远新鲜，不参与条件缓存。
func (a *API) GetCommunication(c *gin.Context) {
	n, err := pair.Normalize(c.Query("user1"), c.Query("user2"))
	if err != nil {
		transport.Fail(c, "communication", err)
		return
	}
	// 顺序无关的规范键, 同一对用户的两种传参顺序在日志里可聚到一起
	log.Debug().Str("pair", n.Key()).Msg("交流分析请求")

	dateFrom, dateTo, ok := parseDateRange(c)
	if !ok {
		return
	}

	window := pagination.Lenient(c.Query("page"), c.Query("limit"), defaultListLimit, maxListLimit)

	data, err := a.Store.GetCommunicationData(c.Request.Context(), types.CommunicationQuery{
		User1:          n.Canonical1,
		User2:          n.Canonical2,
		ConversationID: c.Query("conversationId"),
		DateFrom:       dateFrom,
		DateTo:         dateTo,
		Limit:          window.Limit,
		Offset:         window.Skip,
	})
	if err != nil {
		transport.Fail(c, "communication", err)
		return
	}

	data.Pagination = window.Meta(data.Pagination.Total)
	transport.SendSuccess(c, pair.UnswapCommunication(data, n.Swapped))
}

// GetAggregatedCommunication 处理双人聚合指标请求。
// 粒度在边界校验，编排器只接受合法值。
func (a *API) GetAggregatedCommunication(c *gin.Context) {
	n, err := pair.Normalize(c.Query("user1"), c.Query("user2"))
	if err != nil {
		transport.Fail(c, "communication.aggregate", err)
		return
	}
	log.Debug().Str("pair", n.Key()).Msg("聚合指标请求")

	granularity := c.DefaultQuery("granularity", "daily")
	if granularity != "daily" && granularity != "weekly" && granularity != "monthly" {
		transport.BadRequest(c, "Invalid granularity")
		return
	}

	dateFrom, dateTo, ok := parseDateRange(c)
	if !ok {
		return
	}

	metrics, err := a.Store.GetAggregatedCommunicationData(c.Request.Context(), types.AggregationQuery{
		User1:       n.Canonical1,
		User2:       n.Canonical2,
		Granularity: granularity,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
	})
	if err != nil {
		transport.Fail(c, "communication.aggregate", err)
		return
	}

	transport.SendSuccess(c, pair.UnswapAggregated(metrics, n.Swapped))
}

// parseDateRange 解析可选的 dateFrom/dateTo。纯日期形式的终点扩展到当日末尾。
// 解析失败时直接写出 400 并返回 ok=false。
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	var dateFrom, dateTo time.Time

	if s := c.Query("dateFrom"); s != "" {
		t, ok := util.ParseISOTime(s)
		if !ok {
			transport.BadRequest(c, "Invalid dateFrom")
			return time.Time{}, time.Time{}, false
		}
		dateFrom = t
	}

	if s := c.Query("dateTo"); s != "" {
		t, ok := util.ParseISOTime(s)
		if !ok {
			transport.BadRequest(c, "Invalid dateTo")
			return time.Time{}, time.Time{}, false
		}
		if util.IsDateOnly(s) {
			t = util.EndOfDay(t)
		}
		dateTo = t
	}

	if !dateFrom.IsZero() && !dateTo.IsZero() && dateTo.Before(dateFrom) {
		transport.BadRequest(c, "dateTo must not precede dateFrom")
		return time.Time{}, time.Time{}, false
	}

	return dateFrom, dateTo, true
}
