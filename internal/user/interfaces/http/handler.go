package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	"github.com/wyfcoding/tradersroom/internal/user/application"
	"github.com/wyfcoding/tradersroom/pkg/pagination"
)

// UserAdminHandler 管理端账户管理 HTTP 处理器
type UserAdminHandler struct {
	svc *application.UserAdminService
}

// NewUserAdminHandler 创建账户管理处理器实例
func NewUserAdminHandler(svc *application.UserAdminService) *UserAdminHandler {
	return &UserAdminHandler{svc: svc}
}

// RegisterRoutes 注册 admin 角色的账户管理路由
func (h *UserAdminHandler) RegisterRoutes(admin *gin.RouterGroup) {
	users := admin.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:id", h.Get)
		users.PATCH("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}

// CreateUserRequest 管理员创建账户请求
type CreateUserRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	PhoneNumber   string `json:"phone_number"`
	CountryCode   string `json:"country_code"`
	Password      string `json:"password" binding:"required,min=8"`
	Role          string `json:"role" binding:"omitempty,oneof=client admin"`
	EmailVerified bool   `json:"email_verified"`
}

// Create 管理员创建账户
func (h *UserAdminHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	user, err := h.svc.Create(c.Request.Context(), application.CreateUserCommand{
		FullName:      req.FullName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		CountryCode:   req.CountryCode,
		Password:      req.Password,
		Role:          authdomain.UserRole(req.Role),
		EmailVerified: req.EmailVerified,
	})
	if err != nil {
		h.writeError(c, err, "Failed to create user")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// List 分页列出账户
func (h *UserAdminHandler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	users, total, err := h.svc.List(c.Request.Context(), p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list users", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list users", "")
		return
	}
	response.Success(c, pagination.NewPage(total, p, users))
}

// Get 账户详情及其名下的业务对象
func (h *UserAdminHandler) Get(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to get user")
		return
	}
	response.Success(c, detail)
}

// UpdateUserRequest 管理员更新账户请求，缺省字段保持不变
type UpdateUserRequest struct {
	FullName      *string `json:"full_name"`
	Email         *string `json:"email" binding:"omitempty,email"`
	PhoneNumber   *string `json:"phone_number"`
	CountryCode   *string `json:"country_code"`
	Role          *string `json:"role" binding:"omitempty,oneof=client admin"`
	EmailVerified *bool   `json:"email_verified"`
	Password      *string `json:"password" binding:"omitempty,min=8"`
}

// Update 管理员更新账户
func (h *UserAdminHandler) Update(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.UpdateUserCommand{
		FullName:      req.FullName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		CountryCode:   req.CountryCode,
		EmailVerified: req.EmailVerified,
		Password:      req.Password,
	}
	if req.Role != nil {
		role := authdomain.UserRole(*req.Role)
		cmd.Role = &role
	}

	user, err := h.svc.Update(c.Request.Context(), id, cmd)
	if err != nil {
		h.writeError(c, err, "Failed to update user")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// Delete 删除账户
func (h *UserAdminHandler) Delete(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to delete user")
		return
	}
	response.Success(c, gin.H{"message": "user deleted successfully"})
}

func (h *UserAdminHandler) paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid user id", "")
		return 0, false
	}
	return uint(id), true
}

func (h *UserAdminHandler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, authdomain.ErrNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, authdomain.ErrEmailTaken), errors.Is(err, application.ErrMissingUserFields):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	default:
		logging.Error(c.Request.Context(), logMsg, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "internal error", "")
	}
}
