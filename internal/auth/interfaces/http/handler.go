package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/tradersroom/internal/auth/application"
	"github.com/wyfcoding/tradersroom/internal/auth/domain"
	"github.com/wyfcoding/tradersroom/pkg/middleware"
)

// AuthHandler 账户相关的 HTTP 处理器
type AuthHandler struct {
	cmd   *application.AuthCommandService
	query *application.AuthQueryService
}

// NewAuthHandler 创建账户处理器实例
func NewAuthHandler(cmd *application.AuthCommandService, query *application.AuthQueryService) *AuthHandler {
	return &AuthHandler{cmd: cmd, query: query}
}

// RegisterAuthRoutes 注册公开的认证路由
func (h *AuthHandler) RegisterAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/verify-email", h.VerifyEmail)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

// RegisterProfileRoutes 注册需要 client 角色的资料路由
func (h *AuthHandler) RegisterProfileRoutes(client *gin.RouterGroup) {
	profile := client.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/password", h.ChangePassword)
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number"`
	CountryCode string `json:"country_code"`
	PromoCode   string `json:"promo_code"`
}

// Register 账户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	user, err := h.cmd.Register(c.Request.Context(), application.RegisterCommand{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		CountryCode: req.CountryCode,
		PromoCode:   req.PromoCode,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to register user", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to register", "")
		return
	}

	response.Success(c, gin.H{"user": user})
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 账户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	token, expiresAt, user, err := h.cmd.Login(c.Request.Context(), application.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrEmailNotVerified):
			response.ErrorWithStatus(c, http.StatusUnauthorized, err.Error(), "")
		default:
			logging.Error(c.Request.Context(), "Failed to login", "error", err)
			response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to login", "")
		}
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}

// VerifyEmail 邮箱验证
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "token is required", "")
		return
	}

	if err := h.cmd.VerifyEmail(c.Request.Context(), token); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to verify email", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to verify email", "")
		return
	}

	response.Success(c, gin.H{"message": "email verified successfully"})
}

// ForgotPassword 发起密码重置
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	if err := h.cmd.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		logging.Error(c.Request.Context(), "Failed to start password reset", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to process request", "")
		return
	}

	// 无论邮箱是否存在都返回同样的提示
	response.Success(c, gin.H{"message": "if the email exists, a reset link has been sent"})
}

// ResetPassword 凭重置令牌设置新密码
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	if err := h.cmd.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to reset password", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to reset password", "")
		return
	}

	response.Success(c, gin.H{"message": "password reset successfully"})
}

// GetProfile 查询当前账户资料
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.query.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to get profile", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to get profile", "")
		return
	}

	response.Success(c, gin.H{"user": user})
}

// UpdateProfile 更新当前账户资料
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		FullName    string `json:"full_name"`
		PhoneNumber string `json:"phone_number"`
		CountryCode string `json:"country_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	user, err := h.cmd.UpdateProfile(c.Request.Context(), application.UpdateProfileCommand{
		UserID:      middleware.UserID(c),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		CountryCode: req.CountryCode,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to update profile", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to update profile", "")
		return
	}

	response.Success(c, gin.H{"user": user})
}

// ChangePassword 修改密码
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	err := h.cmd.ChangePassword(c.Request.Context(), application.ChangePasswordCommand{
		UserID:      middleware.UserID(c),
		OldPassword: req.CurrentPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			response.ErrorWithStatus(c, http.StatusBadRequest, "current password is incorrect", "")
		case errors.Is(err, domain.ErrNotFound):
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
		default:
			logging.Error(c.Request.Context(), "Failed to change password", "error", err)
			response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to change password", "")
		}
		return
	}

	response.Success(c, gin.H{"message": "password changed successfully"})
}
