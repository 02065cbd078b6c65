package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/tradersroom/internal/kyc/application"
	"github.com/wyfcoding/tradersroom/internal/kyc/domain"
	"github.com/wyfcoding/tradersroom/internal/review"
	"github.com/wyfcoding/tradersroom/pkg/middleware"
	"github.com/wyfcoding/tradersroom/pkg/pagination"
	"github.com/wyfcoding/tradersroom/pkg/storage"
)

// KycHandler KYC 证件 HTTP 处理器
type KycHandler struct {
	svc   *application.KycService
	files storage.Store
}

// NewKycHandler 创建 KYC 处理器实例
func NewKycHandler(svc *application.KycService, files storage.Store) *KycHandler {
	return &KycHandler{svc: svc, files: files}
}

// RegisterClientRoutes 注册 client 角色的 KYC 路由
func (h *KycHandler) RegisterClientRoutes(client *gin.RouterGroup) {
	kyc := client.Group("/profile/kyc")
	{
		kyc.POST("", h.Upload)
		kyc.GET("", h.MyDocuments)
	}
}

// RegisterAdminRoutes 注册 admin 角色的 KYC 路由
func (h *KycHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	kyc := admin.Group("/kyc")
	{
		kyc.GET("", h.ListForReview)
		kyc.PATCH("/:id/approve", h.Approve)
		kyc.PATCH("/:id/reject", h.Reject)
	}
}

// Upload 上传证件文件，同类型重复上传会覆盖并重置回 pending
func (h *KycHandler) Upload(c *gin.Context) {
	docType := domain.DocumentType(c.PostForm("document_type"))

	file, err := c.FormFile("document")
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "document type and file are required", "")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "failed to read document file", "")
		return
	}
	defer src.Close()

	path, err := h.files.Save(c.Request.Context(), "kyc", file.Filename, src)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to store kyc document", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to store document", "")
		return
	}

	doc, err := h.svc.Upload(c.Request.Context(), application.UploadCommand{
		UserID:       middleware.UserID(c),
		DocumentType: docType,
		DocumentPath: path,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingDocument), errors.Is(err, domain.ErrInvalidDocumentType):
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		default:
			logging.Error(c.Request.Context(), "Failed to upload kyc document", "error", err)
			response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to upload document", "")
		}
		return
	}

	response.Success(c, gin.H{"document": doc})
}

// MyDocuments 客户自己的全部证件
func (h *KycHandler) MyDocuments(c *gin.Context) {
	docs, err := h.svc.Documents(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list kyc documents", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list documents", "")
		return
	}
	response.Success(c, gin.H{"documents": docs})
}

// ListForReview 管理端分页列出证件，可按 status 过滤
func (h *KycHandler) ListForReview(c *gin.Context) {
	p := pagination.FromQuery(c)
	status := review.Status(c.Query("status"))

	docs, total, err := h.svc.ListForReview(c.Request.Context(), status, p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list kyc documents", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list documents", "")
		return
	}
	response.Success(c, pagination.NewPage(total, p, docs))
}

// Approve 审核通过证件
func (h *KycHandler) Approve(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	doc, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to approve kyc document")
		return
	}
	response.Success(c, gin.H{"document": doc})
}

// Reject 审核拒绝证件
func (h *KycHandler) Reject(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var body struct {
		AdminNote string `json:"admin_note"`
	}
	_ = c.ShouldBindJSON(&body)

	doc, err := h.svc.Reject(c.Request.Context(), id, body.AdminNote)
	if err != nil {
		h.writeError(c, err, "Failed to reject kyc document")
		return
	}
	response.Success(c, gin.H{"document": doc})
}

func (h *KycHandler) paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid id", "")
		return 0, false
	}
	return uint(id), true
}

func (h *KycHandler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, review.ErrInvalidState):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	default:
		logging.Error(c.Request.Context(), logMsg, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "internal error", "")
	}
}
