package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/tradersroom/internal/admin/application"
)

// DashboardHandler 管理端仪表盘 HTTP 处理器
type DashboardHandler struct {
	svc *application.DashboardService
}

// NewDashboardHandler 创建仪表盘处理器实例
func NewDashboardHandler(svc *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// RegisterRoutes 注册 admin 角色的仪表盘路由
func (h *DashboardHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard/stats", h.Stats)
}

// Stats 仪表盘统计数据
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to collect dashboard stats", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to collect dashboard stats", "")
		return
	}
	response.Success(c, stats)
}
