package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/tradersroom/internal/notification/application"
	"github.com/wyfcoding/tradersroom/pkg/middleware"
	"github.com/wyfcoding/tradersroom/pkg/pagination"
)

// NotificationHandler 客户端通知历史 HTTP 处理器
type NotificationHandler struct {
	dispatcher *application.Dispatcher
}

// NewNotificationHandler 创建通知处理器实例
func NewNotificationHandler(dispatcher *application.Dispatcher) *NotificationHandler {
	return &NotificationHandler{dispatcher: dispatcher}
}

// RegisterRoutes 注册 client 角色的通知路由
func (h *NotificationHandler) RegisterRoutes(client *gin.RouterGroup) {
	client.GET("/notifications", h.History)
}

// History 当前账户的通知发送历史
func (h *NotificationHandler) History(c *gin.Context) {
	userID := middleware.UserID(c)
	p := pagination.FromQuery(c)

	items, total, err := h.dispatcher.History(c.Request.Context(), userID, p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list notifications", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list notifications", "")
		return
	}
	response.Success(c, pagination.NewPage(total, p, items))
}
