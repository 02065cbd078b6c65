package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/tradersroom/internal/funding/application"
	"github.com/wyfcoding/tradersroom/internal/funding/domain"
	"github.com/wyfcoding/tradersroom/pkg/middleware"
	"github.com/wyfcoding/tradersroom/pkg/pagination"
	"github.com/wyfcoding/tradersroom/pkg/storage"
)

// ClientFundingHandler 客户侧出入金 HTTP 处理器
type ClientFundingHandler struct {
	cmd     *application.FundingCommandService
	query   *application.FundingQueryService
	checker *application.EligibilityChecker
	files   storage.Store
}

// NewClientFundingHandler 创建客户侧出入金处理器实例
func NewClientFundingHandler(
	cmd *application.FundingCommandService,
	query *application.FundingQueryService,
	checker *application.EligibilityChecker,
	files storage.Store,
) *ClientFundingHandler {
	return &ClientFundingHandler{cmd: cmd, query: query, checker: checker, files: files}
}

// RegisterRoutes 注册 client 角色的出入金路由
func (h *ClientFundingHandler) RegisterRoutes(client *gin.RouterGroup) {
	deposits := client.Group("/deposits")
	{
		deposits.GET("/methods", h.DepositMethods)
		deposits.POST("", h.SubmitDeposit)
	}

	withdrawals := client.Group("/withdrawals")
	{
		withdrawals.GET("/methods", h.WithdrawalMethods)
		withdrawals.GET("/eligibility", h.Eligibility)
		withdrawals.POST("", h.SubmitWithdrawal)
	}

	payout := client.Group("/profile/withdrawal-methods")
	{
		payout.GET("", h.ListPayoutMethods)
		payout.POST("", h.AddPayoutMethod)
		payout.DELETE("/:id", h.DeletePayoutMethod)
	}

	wallet := client.Group("/wallet")
	{
		wallet.GET("/deposit-history", h.DepositHistory)
		wallet.GET("/withdrawal-history", h.WithdrawalHistory)
	}
}

// DepositMethods 客户端可见的入金渠道
func (h *ClientFundingHandler) DepositMethods(c *gin.Context) {
	methods, err := h.query.ActiveDepositMethods(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list deposit methods", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list deposit methods", "")
		return
	}
	response.Success(c, gin.H{"methods": methods})
}

// SubmitDeposit 提交入金申请，multipart 表单携带凭证文件
func (h *ClientFundingHandler) SubmitDeposit(c *gin.Context) {
	methodID, err := strconv.ParseUint(c.PostForm("method_id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "method_id is required", "")
		return
	}
	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "amount is required", "")
		return
	}

	var proofPath string
	if file, err := c.FormFile("proof"); err == nil {
		src, err := file.Open()
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "failed to read proof file", "")
			return
		}
		defer src.Close()

		proofPath, err = h.files.Save(c.Request.Context(), "deposits", file.Filename, src)
		if err != nil {
			logging.Error(c.Request.Context(), "Failed to store proof file", "error", err)
			response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to store proof", "")
			return
		}
	}

	req, err := h.cmd.SubmitDeposit(c.Request.Context(), application.SubmitDepositCommand{
		UserID:               middleware.UserID(c),
		MethodID:             uint(methodID),
		Amount:               amount,
		TransactionReference: c.PostForm("transaction_reference"),
		ProofPath:            proofPath,
	})
	if err != nil {
		h.writeError(c, err, "Failed to submit deposit")
		return
	}

	response.Success(c, gin.H{"request": req})
}

// WithdrawalMethods 客户处于 active 的出金账户
func (h *ClientFundingHandler) WithdrawalMethods(c *gin.Context) {
	methods, err := h.query.ActiveWithdrawalMethods(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list withdrawal methods", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list withdrawal methods", "")
		return
	}
	response.Success(c, gin.H{"methods": methods})
}

// Eligibility 出金资格检查
func (h *ClientFundingHandler) Eligibility(c *gin.Context) {
	result, err := h.checker.Check(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to check eligibility", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to check eligibility", "")
		return
	}
	response.Success(c, result)
}

// SubmitWithdrawalRequest 提交出金申请的请求体
type SubmitWithdrawalRequest struct {
	MethodID uint            `json:"method_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Note     string          `json:"note"`
}

// SubmitWithdrawal 提交出金申请
func (h *ClientFundingHandler) SubmitWithdrawal(c *gin.Context) {
	var req SubmitWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	created, err := h.cmd.SubmitWithdrawal(c.Request.Context(), application.SubmitWithdrawalCommand{
		UserID:   middleware.UserID(c),
		MethodID: req.MethodID,
		Amount:   req.Amount,
		Note:     req.Note,
	})
	if err != nil {
		h.writeError(c, err, "Failed to submit withdrawal")
		return
	}

	response.Success(c, gin.H{"request": created})
}

// AddPayoutMethodRequest 新增出金账户的请求体
type AddPayoutMethodRequest struct {
	Type          domain.MethodType `json:"type" binding:"required"`
	BankName      string            `json:"bank_name"`
	Branch        string            `json:"branch"`
	AccountNumber string            `json:"account_number"`
	AccountName   string            `json:"account_name"`
	SwiftCode     string            `json:"swift_code"`
	Iban          string            `json:"iban"`
	Network       string            `json:"network"`
	WalletAddress string            `json:"wallet_address"`
}

// AddPayoutMethod 新增出金账户
func (h *ClientFundingHandler) AddPayoutMethod(c *gin.Context) {
	var req AddPayoutMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	method := &domain.WithdrawalMethod{
		UserID:        middleware.UserID(c),
		Type:          req.Type,
		BankName:      req.BankName,
		Branch:        req.Branch,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		SwiftCode:     req.SwiftCode,
		Iban:          req.Iban,
		Network:       req.Network,
		WalletAddress: req.WalletAddress,
	}
	if err := h.cmd.AddWithdrawalMethod(c.Request.Context(), method); err != nil {
		logging.Error(c.Request.Context(), "Failed to add withdrawal method", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to add withdrawal method", "")
		return
	}

	response.Success(c, gin.H{"method": method})
}

// ListPayoutMethods 客户全部出金账户
func (h *ClientFundingHandler) ListPayoutMethods(c *gin.Context) {
	methods, err := h.query.WithdrawalMethods(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list payout methods", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list payout methods", "")
		return
	}
	response.Success(c, gin.H{"methods": methods})
}

// DeletePayoutMethod 删除自己的出金账户
func (h *ClientFundingHandler) DeletePayoutMethod(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid method id", "")
		return
	}

	if err := h.cmd.RemoveWithdrawalMethod(c.Request.Context(), uint(id), middleware.UserID(c)); err != nil {
		logging.Error(c.Request.Context(), "Failed to delete payout method", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to delete payout method", "")
		return
	}

	response.Success(c, gin.H{"message": "withdrawal method deleted"})
}

// DepositHistory 客户入金申请历史
func (h *ClientFundingHandler) DepositHistory(c *gin.Context) {
	p := pagination.FromQuery(c)
	items, total, err := h.query.DepositHistory(c.Request.Context(), middleware.UserID(c), p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list deposit history", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list deposit history", "")
		return
	}
	response.Success(c, pagination.NewPage(total, p, items))
}

// WithdrawalHistory 客户出金申请历史
func (h *ClientFundingHandler) WithdrawalHistory(c *gin.Context) {
	p := pagination.FromQuery(c)
	items, total, err := h.query.WithdrawalHistory(c.Request.Context(), middleware.UserID(c), p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list withdrawal history", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list withdrawal history", "")
		return
	}
	response.Success(c, pagination.NewPage(total, p, items))
}

func (h *ClientFundingHandler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrMethodInactive):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	default:
		logging.Error(c.Request.Context(), logMsg, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "internal error", "")
	}
}
