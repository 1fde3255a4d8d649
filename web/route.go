package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// setupRoutes 初始化所有应用程序路由。
func (s *Service) setupRoutes() {
	// API v1 路由组, 使用在 service 中初始化的处理器
	v1 := s.router.Group("/api/v1")
	{
		// 用户路由
		v1.GET("/users", s.api.GetUsers)
		v1.GET("/users/:id", s.api.GetUserByID)

		// 会话路由
		v1.GET("/conversations", s.api.GetConversations)
		v1.GET("/conversations/:id", s.api.GetConversationByID)
		v1.GET("/conversations/:id/messages", s.api.GetConversationMessages)

		// 总览路由
		v1.GET("/dashboard", s.api.GetDashboard)

		// 交流分析路由
		analysisGroup := v1.Group("/analysis")
		{
			analysisGroup.GET("/communication", s.api.GetCommunication)
			analysisGroup.GET("/communication/aggregate", s.api.GetAggregatedCommunication)
			analysisGroup.GET("/communication/export", s.api.ExportCommunication)
		}
	}

	// 健康检查
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
