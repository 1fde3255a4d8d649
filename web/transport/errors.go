package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mirekli/commgraph/store/types"
)

// ErrorResponse 是请求失败时的标准化 JSON 响应。
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SendError 使用给定的 HTTP 状态码和标准化的 JSON 错误载荷进行响应。
// 错误响应绝不携带缓存校验头。
func SendError(c *gin.Context, httpStatus int, message, details string) {
	c.Writer.Header().Del("ETag")
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// BadRequest 发送一个 400 Bad Request 错误。
func BadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message, "")
}

// NotFound 发送一个 404 Not Found 错误。
func NotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message, "")
}

// Fail 把 store 层的错误映射到 HTTP 响应。
// 400/404 只作为客户端反馈，不记入服务端故障日志；
// 500/503 记录操作名和原始原因，便于不复现即可定位。
func Fail(c *gin.Context, op string, err error) {
	var pe *types.ParameterError
	if errors.As(err, &pe) {
		BadRequest(c, pe.Msg)
		return
	}

	switch {
	case errors.Is(err, types.ErrUserNotFound):
		NotFound(c, "User not found")
		return
	case errors.Is(err, types.ErrConversationNotFound):
		NotFound(c, "Conversation not found")
		return
	case errors.Is(err, types.ErrUpstreamUnavailable):
		log.Error().Str("op", op).Err(err).Msg("图库连接检查失败")
		SendError(c, http.StatusServiceUnavailable, "database connection failed", "")
		return
	}

	var qe *types.QueryError
	if errors.As(err, &qe) {
		details := "Unknown error"
		if qe.Cause != nil {
			details = qe.Cause.Error()
		}
		log.Error().Str("op", qe.Op).Err(qe.Cause).Msg("查询失败")
		SendError(c, http.StatusInternalServerError, "Query failed", details)
		return
	}

	// 无法归类的错误原样记录，不替它编造消息
	log.Error().Str("op", op).Err(err).Msg("未识别的服务端错误")
	SendError(c, http.StatusInternalServerError, "Internal server error", "Unknown error")
}
