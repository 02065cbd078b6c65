package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/tradersroom/internal/support/application"
	"github.com/wyfcoding/tradersroom/internal/support/domain"
	"github.com/wyfcoding/tradersroom/pkg/middleware"
	"github.com/wyfcoding/tradersroom/pkg/pagination"
	"github.com/wyfcoding/tradersroom/pkg/storage"
)

// SupportHandler 工单 HTTP 处理器
type SupportHandler struct {
	svc   *application.SupportService
	files storage.Store
}

// NewSupportHandler 创建工单处理器实例
func NewSupportHandler(svc *application.SupportService, files storage.Store) *SupportHandler {
	return &SupportHandler{svc: svc, files: files}
}

// RegisterClientRoutes 注册 client 角色的工单路由
func (h *SupportHandler) RegisterClientRoutes(client *gin.RouterGroup) {
	support := client.Group("/support")
	{
		support.POST("", h.CreateTicket)
		support.GET("", h.MyTickets)
		support.GET("/:id", h.MyTicket)
		support.POST("/:id/messages", h.PostClientMessage)
	}
}

// RegisterAdminRoutes 注册 admin 角色的工单路由
func (h *SupportHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	support := admin.Group("/support")
	{
		support.GET("", h.Tickets)
		support.GET("/:id", h.Ticket)
		support.POST("/:id/messages", h.PostAdminMessage)
		support.PATCH("/:id/close", h.CloseTicket)
	}
}

// CreateTicket 创建工单，multipart 表单可携带附件
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	attachment, ok := h.saveAttachment(c)
	if !ok {
		return
	}

	ticket, err := h.svc.CreateTicket(c.Request.Context(), application.CreateTicketCommand{
		UserID:         middleware.UserID(c),
		Subject:        c.PostForm("subject"),
		Category:       domain.Category(c.PostForm("category")),
		Message:        c.PostForm("message"),
		AttachmentPath: attachment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingFields) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to create ticket", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to create ticket", "")
		return
	}

	response.Success(c, gin.H{"ticket": ticket})
}

// MyTickets 客户自己的工单分页列表
func (h *SupportHandler) MyTickets(c *gin.Context) {
	p := pagination.FromQuery(c)
	tickets, total, err := h.svc.MyTickets(c.Request.Context(), middleware.UserID(c), p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list tickets", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list tickets", "")
		return
	}
	response.Success(c, pagination.NewPage(total, p, tickets))
}

// MyTicket 客户查看自己的工单详情
func (h *SupportHandler) MyTicket(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	ticket, err := h.svc.MyTicket(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.writeError(c, err, "Failed to get ticket")
		return
	}
	response.Success(c, gin.H{"ticket": ticket})
}

// PostClientMessage 客户向工单追加消息
func (h *SupportHandler) PostClientMessage(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	attachment, ok := h.saveAttachment(c)
	if !ok {
		return
	}

	err := h.svc.PostClientMessage(c.Request.Context(), middleware.UserID(c), application.PostMessageCommand{
		TicketID:       id,
		Message:        c.PostForm("message"),
		AttachmentPath: attachment,
	})
	if err != nil {
		h.writeError(c, err, "Failed to post message")
		return
	}
	response.Success(c, gin.H{"message": "reply sent successfully"})
}

// Tickets 管理端分页列出工单，可按 status 过滤
func (h *SupportHandler) Tickets(c *gin.Context) {
	p := pagination.FromQuery(c)
	status := domain.TicketStatus(c.Query("status"))

	tickets, total, err := h.svc.Tickets(c.Request.Context(), status, p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list tickets", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list tickets", "")
		return
	}
	response.Success(c, pagination.NewPage(total, p, tickets))
}

// Ticket 管理端查看工单详情
func (h *SupportHandler) Ticket(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	ticket, err := h.svc.Ticket(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to get ticket")
		return
	}
	response.Success(c, gin.H{"ticket": ticket})
}

// PostAdminMessage 管理员回复工单
func (h *SupportHandler) PostAdminMessage(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	attachment, ok := h.saveAttachment(c)
	if !ok {
		return
	}

	err := h.svc.PostAdminMessage(c.Request.Context(), application.PostMessageCommand{
		TicketID:       id,
		Message:        c.PostForm("message"),
		AttachmentPath: attachment,
	})
	if err != nil {
		h.writeError(c, err, "Failed to post admin message")
		return
	}
	response.Success(c, gin.H{"message": "reply sent successfully"})
}

// CloseTicket 关闭工单
func (h *SupportHandler) CloseTicket(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	ticket, err := h.svc.CloseTicket(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to close ticket")
		return
	}
	response.Success(c, gin.H{"ticket": ticket})
}

// saveAttachment 保存可选的附件文件
func (h *SupportHandler) saveAttachment(c *gin.Context) (string, bool) {
	file, err := c.FormFile("attachment")
	if err != nil {
		return "", true
	}
	src, err := file.Open()
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "failed to read attachment", "")
		return "", false
	}
	defer src.Close()

	path, err := h.files.Save(c.Request.Context(), "support", file.Filename, src)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to store attachment", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to store attachment", "")
		return "", false
	}
	return path, true
}

func (h *SupportHandler) paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid ticket id", "")
		return 0, false
	}
	return uint(id), true
}

func (h *SupportHandler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrTicketClosed), errors.Is(err, domain.ErrMissingMessage):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	default:
		logging.Error(c.Request.Context(), logMsg, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "internal error", "")
	}
}
