package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/tradersroom/internal/funding/domain"
	walletdomain "github.com/wyfcoding/tradersroom/internal/wallet/domain"
)

// 资格检查失败的提示文案，按检查顺序返回第一条命中的
const (
	ReasonKycIncomplete   = "KYC verification incomplete. Please submit an approved identity document and utility bill."
	ReasonNoActiveMethods = "No active withdrawal methods added."
	ReasonNoBalance       = "Insufficient wallet balance."
)

// KycVerifier 出金资格检查需要的 KYC 视图
type KycVerifier interface {
	// HasApprovedIdentity 是否存在已通过的身份证件（身份证或驾照）
	HasApprovedIdentity(ctx context.Context, userID uint) (bool, error)
	// HasApprovedAddress 是否存在已通过的地址证明（账单）
	HasApprovedAddress(ctx context.Context, userID uint) (bool, error)
}

// Eligibility 出金资格检查结论
type Eligibility struct {
	Eligible bool            `json:"eligible"`
	Reason   string          `json:"reason,omitempty"`
	Balance  decimal.Decimal `json:"balance"`
}

// EligibilityChecker 出金资格检查器。纯读策略，每次调用实时计算，不缓存。
// 检查按 KYC、出金账户、余额的顺序短路，只返回第一条失败原因。
type EligibilityChecker struct {
	kyc     KycVerifier
	methods domain.WithdrawalMethodRepository
	ledger  walletdomain.LedgerRepository
}

// NewEligibilityChecker 创建出金资格检查器
func NewEligibilityChecker(kyc KycVerifier, methods domain.WithdrawalMethodRepository, ledger walletdomain.LedgerRepository) *EligibilityChecker {
	return &EligibilityChecker{kyc: kyc, methods: methods, ledger: ledger}
}

// Check 评估账户当前是否可提交出金申请
func (c *EligibilityChecker) Check(ctx context.Context, userID uint) (*Eligibility, error) {
	hasIdentity, err := c.kyc.HasApprovedIdentity(ctx, userID)
	if err != nil {
		return nil, err
	}
	hasAddress, err := c.kyc.HasApprovedAddress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasIdentity || !hasAddress {
		return &Eligibility{Eligible: false, Reason: ReasonKycIncomplete, Balance: decimal.Zero}, nil
	}

	methods, err := c.methods.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(methods) == 0 {
		return &Eligibility{Eligible: false, Reason: ReasonNoActiveMethods, Balance: decimal.Zero}, nil
	}

	balance, err := c.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !balance.IsPositive() {
		return &Eligibility{Eligible: false, Reason: ReasonNoBalance, Balance: balance}, nil
	}

	return &Eligibility{Eligible: true, Balance: balance}, nil
}
