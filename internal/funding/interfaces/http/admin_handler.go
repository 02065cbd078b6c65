package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/tradersroom/internal/funding/application"
	"github.com/wyfcoding/tradersroom/internal/funding/domain"
	"github.com/wyfcoding/tradersroom/internal/review"
	"github.com/wyfcoding/tradersroom/pkg/pagination"
	"github.com/wyfcoding/tradersroom/pkg/storage"
)

// AdminFundingHandler 管理侧出入金 HTTP 处理器
type AdminFundingHandler struct {
	cmd     *application.FundingCommandService
	methods *application.MethodCommandService
	query   *application.FundingQueryService
	files   storage.Store
}

// NewAdminFundingHandler 创建管理侧出入金处理器实例
func NewAdminFundingHandler(
	cmd *application.FundingCommandService,
	methods *application.MethodCommandService,
	query *application.FundingQueryService,
	files storage.Store,
) *AdminFundingHandler {
	return &AdminFundingHandler{cmd: cmd, methods: methods, query: query, files: files}
}

// RegisterRoutes 注册 admin 角色的出入金路由
func (h *AdminFundingHandler) RegisterRoutes(admin *gin.RouterGroup) {
	methods := admin.Group("/deposit-methods")
	{
		methods.GET("", h.ListDepositMethods)
		methods.POST("", h.CreateDepositMethod)
		methods.GET("/:id", h.GetDepositMethod)
		methods.PUT("/:id", h.UpdateDepositMethod)
		methods.PATCH("/:id/status", h.ToggleDepositMethodStatus)
	}

	deposits := admin.Group("/deposit-requests")
	{
		deposits.GET("", h.ListDepositRequests)
		deposits.PATCH("/:id/approve", h.ApproveDeposit)
		deposits.PATCH("/:id/reject", h.RejectDeposit)
	}

	withdrawals := admin.Group("/withdrawal-requests")
	{
		withdrawals.GET("", h.ListWithdrawalRequests)
		withdrawals.PATCH("/:id/approve", h.ApproveWithdrawal)
		withdrawals.PATCH("/:id/reject", h.RejectWithdrawal)
	}
}

// CreateDepositMethod 创建入金渠道，multipart 表单可携带二维码和 logo
func (h *AdminFundingHandler) CreateDepositMethod(c *gin.Context) {
	cmd, ok := h.bindMethodForm(c)
	if !ok {
		return
	}

	method, err := h.methods.CreateDepositMethod(c.Request.Context(), cmd)
	if err != nil {
		if errors.Is(err, application.ErrMissingMethodFields) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to create deposit method", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to create deposit method", "")
		return
	}

	response.Success(c, gin.H{"method": method})
}

// ListDepositMethods 分页列出全部入金渠道
func (h *AdminFundingHandler) ListDepositMethods(c *gin.Context) {
	p := pagination.FromQuery(c)
	methods, total, err := h.query.DepositMethods(c.Request.Context(), p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list deposit methods", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list deposit methods", "")
		return
	}
	response.Success(c, pagination.NewPage(total, p, methods))
}

// GetDepositMethod 入金渠道详情
func (h *AdminFundingHandler) GetDepositMethod(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	method, err := h.query.DepositMethod(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to get deposit method")
		return
	}
	response.Success(c, gin.H{"method": method})
}

// UpdateDepositMethod 更新入金渠道
func (h *AdminFundingHandler) UpdateDepositMethod(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	cmd, ok := h.bindMethodForm(c)
	if !ok {
		return
	}

	method, err := h.methods.UpdateDepositMethod(c.Request.Context(), id, cmd)
	if err != nil {
		h.writeError(c, err, "Failed to update deposit method")
		return
	}
	response.Success(c, gin.H{"method": method})
}

// ToggleDepositMethodStatus 切换渠道状态
func (h *AdminFundingHandler) ToggleDepositMethodStatus(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req struct {
		Status domain.MethodStatus `json:"status" binding:"required,oneof=active inactive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	method, err := h.methods.ToggleDepositMethodStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeError(c, err, "Failed to toggle deposit method status")
		return
	}
	response.Success(c, gin.H{"method": method})
}

// ListDepositRequests 分页列出全部入金申请单
func (h *AdminFundingHandler) ListDepositRequests(c *gin.Context) {
	p := pagination.FromQuery(c)
	items, total, err := h.query.DepositRequests(c.Request.Context(), p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list deposit requests", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list deposit requests", "")
		return
	}
	response.Success(c, pagination.NewPage(total, p, items))
}

// ApproveDeposit 审批通过入金申请
func (h *AdminFundingHandler) ApproveDeposit(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	req, err := h.cmd.ApproveDeposit(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to approve deposit")
		return
	}
	response.Success(c, gin.H{"request": req})
}

// RejectDeposit 拒绝入金申请
func (h *AdminFundingHandler) RejectDeposit(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var body struct {
		AdminNote string `json:"admin_note"`
	}
	_ = c.ShouldBindJSON(&body)

	req, err := h.cmd.RejectDeposit(c.Request.Context(), id, body.AdminNote)
	if err != nil {
		h.writeError(c, err, "Failed to reject deposit")
		return
	}
	response.Success(c, gin.H{"request": req})
}

// ListWithdrawalRequests 分页列出全部出金申请单
func (h *AdminFundingHandler) ListWithdrawalRequests(c *gin.Context) {
	p := pagination.FromQuery(c)
	items, total, err := h.query.WithdrawalRequests(c.Request.Context(), p.Limit, p.Offset())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list withdrawal requests", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to list withdrawal requests", "")
		return
	}
	response.Success(c, pagination.NewPage(total, p, items))
}

// ApproveWithdrawal 审批通过出金申请
func (h *AdminFundingHandler) ApproveWithdrawal(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	req, err := h.cmd.ApproveWithdrawal(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to approve withdrawal")
		return
	}
	response.Success(c, gin.H{"request": req})
}

// RejectWithdrawal 拒绝出金申请
func (h *AdminFundingHandler) RejectWithdrawal(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var body struct {
		AdminNote string `json:"admin_note"`
	}
	_ = c.ShouldBindJSON(&body)

	req, err := h.cmd.RejectWithdrawal(c.Request.Context(), id, body.AdminNote)
	if err != nil {
		h.writeError(c, err, "Failed to reject withdrawal")
		return
	}
	response.Success(c, gin.H{"request": req})
}

// bindMethodForm 解析渠道表单，二维码和 logo 作为可选上传文件
func (h *AdminFundingHandler) bindMethodForm(c *gin.Context) (application.CreateDepositMethodCommand, bool) {
	cmd := application.CreateDepositMethodCommand{
		Type:            domain.MethodType(c.PostForm("type")),
		Name:            c.PostForm("name"),
		Status:          domain.MethodStatus(c.PostForm("status")),
		BeneficiaryName: c.PostForm("beneficiary_name"),
		BankName:        c.PostForm("bank_name"),
		Branch:          c.PostForm("branch"),
		AccountNumber:   c.PostForm("account_number"),
		IfscCode:        c.PostForm("ifsc_code"),
		Network:         c.PostForm("network"),
		Address:         c.PostForm("address"),
		Notes:           c.PostForm("notes"),
	}

	for field, dst := range map[string]*string{
		"qr_code": &cmd.QrCodePath,
		"logo":    &cmd.LogoPath,
	} {
		file, err := c.FormFile(field)
		if err != nil {
			continue
		}
		src, err := file.Open()
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "failed to read "+field+" file", "")
			return cmd, false
		}
		path, err := h.files.Save(c.Request.Context(), "deposit-methods", file.Filename, src)
		src.Close()
		if err != nil {
			logging.Error(c.Request.Context(), "Failed to store uploaded file", "field", field, "error", err)
			response.ErrorWithStatus(c, http.StatusInternalServerError, "failed to store file", "")
			return cmd, false
		}
		*dst = path
	}
	return cmd, true
}

func (h *AdminFundingHandler) paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid id", "")
		return 0, false
	}
	return uint(id), true
}

func (h *AdminFundingHandler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, review.ErrInvalidState):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, application.ErrMissingMethodFields):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	default:
		logging.Error(c.Request.Context(), logMsg, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "internal error", "")
	}
}
