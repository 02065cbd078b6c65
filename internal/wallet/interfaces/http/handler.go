package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/tradersroom/internal/wallet/application"
	"github.com/wyfcoding/tradersroom/pkg/middleware"
	"github.com/wyfcoding/tradersroom/pkg/pagination"
)

// WalletHandler 钱包查询的 HTTP 处理器
type WalletHandler struct {
	wallet *application.WalletService
}

// NewWalletHandler 创建钱包处理器实例
func NewWalletHandler(wallet *application.WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

// RegisterRoutes 注册 client 角色的钱包路由
func (h *WalletHandler) RegisterRoutes(client *gin.RouterGroup) {
	wallet := client.Group("/wallet")
	{
		wallet.GET("/balance", h.Balance)
		wallet.GET("/transactions", h.Transactions)
	}
}

// Balance 当前余额
func (h *WalletHandler) Balance(c *gin.Context) {
	balance, err := h.wallet.Balance(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to get balance", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to get balance", "")
		return
	}

	response.Success(c, gin.H{"balance": balance})
}

// Transactions 分页钱包流水
func (h *WalletHandler) Transactions(c *gin.Context) {
	p := pagination.FromQuery(c)
	entries, total, err := h.wallet.Transactions(c.Request.Context(), middleware.UserID(c), p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list transactions", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list transactions", "")
		return
	}

	response.Success(c, pagination.NewPage(total, p, entries))
}
