package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mirekli/commgraph/internal/pair"
	"github.com/mirekli/commgraph/store/types"
	"github.com/mirekli/commgraph/web/export"
	"github.com/mirekli/commgraph/web/transport"
)

// ExportCommunication 导出双人共享时间线。format 支持 csv 和 xlsx。
func (a *API) ExportCommunication(c *gin.Context) {
	n, err := pair.Normalize(c.Query("user1"), c.Query("user2"))
	if err != nil {
		transport.Fail(c, "communication.export", err)
		return
	}

	dateFrom, dateTo, ok := parseDateRange(c)
	if !ok {
		return
	}

	q := types.CommunicationQuery{
		User1:    n.Canonical1,
		User2:    n.Canonical2,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}

	format := c.DefaultQuery("format", "csv")
	var (
		data        []byte
		contentType string
	)
	switch format {
	case "csv":
		data, err = a.Export.TimelineCSV(c.Request.Context(), q)
		contentType = "text/csv; charset=utf-8"
	case "xlsx":
		data, err = a.Export.TimelineXLSX(c.Request.Context(), q)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		transport.BadRequest(c, "Invalid export format")
		return
	}
	if err != nil {
		transport.Fail(c, "communication.export", err)
		return
	}

	// 文件名按调用方传入的顺序
	user1, user2 := n.Canonical1, n.Canonical2
	if n.Swapped {
		user1, user2 = user2, user1
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(user1, user2, format)+`"`)
	c.Data(http.StatusOK, contentType, data)
}
