package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/logging"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	"github.com/wyfcoding/tradersroom/internal/funding/domain"
	notifdomain "github.com/wyfcoding/tradersroom/internal/notification/domain"
	walletdomain "github.com/wyfcoding/tradersroom/internal/wallet/domain"
)

// SubmitDepositCommand 客户提交入金申请
type SubmitDepositCommand struct {
	UserID               uint
	MethodID             uint
	Amount               decimal.Decimal
	TransactionReference string
	ProofPath            string
}

// SubmitWithdrawalCommand 客户提交出金申请
type SubmitWithdrawalCommand struct {
	UserID   uint
	MethodID uint
	Amount   decimal.Decimal
	Note     string
}

// FundingCommandService 出入金命令服务。
// 审核结论一律通过仓储的条件更新落库，并发审核同一申请单时只有一次能写成功；
// 审批通过时状态翻转和账本记账在同一事务内提交。
type FundingCommandService struct {
	depositRequests    domain.DepositRequestRepository
	withdrawalRequests domain.WithdrawalRequestRepository
	depositMethods     domain.DepositMethodRepository
	withdrawalMethods  domain.WithdrawalMethodRepository
	ledger             walletdomain.LedgerRepository
	users              authdomain.UserRepository
	notifier           notifdomain.Notifier
}

// NewFundingCommandService 创建出入金命令服务实例
func NewFundingCommandService(
	depositRequests domain.DepositRequestRepository,
	withdrawalRequests domain.WithdrawalRequestRepository,
	depositMethods domain.DepositMethodRepository,
	withdrawalMethods domain.WithdrawalMethodRepository,
	ledger walletdomain.LedgerRepository,
	users authdomain.UserRepository,
	notifier notifdomain.Notifier,
) *FundingCommandService {
	return &FundingCommandService{
		depositRequests:    depositRequests,
		withdrawalRequests: withdrawalRequests,
		depositMethods:     depositMethods,
		withdrawalMethods:  withdrawalMethods,
		ledger:             ledger,
		users:              users,
		notifier:           notifier,
	}
}

// SubmitDeposit 提交入金申请，渠道必须存在且处于 active
func (s *FundingCommandService) SubmitDeposit(ctx context.Context, cmd SubmitDepositCommand) (*domain.DepositRequest, error) {
	if !cmd.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	method, err := s.depositMethods.GetByID(ctx, cmd.MethodID)
	if err != nil {
		return nil, err
	}
	if method == nil || !method.IsActive() {
		return nil, domain.ErrMethodInactive
	}

	req := domain.NewDepositRequest(cmd.UserID, cmd.MethodID, cmd.Amount, cmd.TransactionReference, cmd.ProofPath)
	if err := s.depositRequests.Save(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, notifdomain.EventDepositSubmitted, cmd.UserID, map[string]any{
		"Amount": cmd.Amount.StringFixed(2),
	})
	return req, nil
}

// SubmitWithdrawal 提交出金申请，出金账户必须归属该客户且处于 active
func (s *FundingCommandService) SubmitWithdrawal(ctx context.Context, cmd SubmitWithdrawalCommand) (*domain.WithdrawalRequest, error) {
	if !cmd.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	method, err := s.withdrawalMethods.GetActiveForUser(ctx, cmd.MethodID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.ErrMethodInactive
	}

	req := domain.NewWithdrawalRequest(cmd.UserID, cmd.MethodID, cmd.Amount, cmd.Note)
	if err := s.withdrawalRequests.Save(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, notifdomain.EventWithdrawalSubmitted, cmd.UserID, map[string]any{
		"Amount": cmd.Amount.StringFixed(2),
	})
	return req, nil
}

// ApproveDeposit 审批通过入金申请并为钱包记一笔正数流水
func (s *FundingCommandService) ApproveDeposit(ctx context.Context, id uint) (*domain.DepositRequest, error) {
	var req *domain.DepositRequest
	err := s.depositRequests.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.depositRequests.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}

		if err := req.Approve(txCtx); err != nil {
			return err
		}
		if err := s.depositRequests.CompleteReview(txCtx, req); err != nil {
			return err
		}

		entry := walletdomain.NewDepositEntry(req.UserID, req.Amount, req.ID, "Deposit approved by admin")
		return s.ledger.Append(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notifdomain.EventDepositApproved, req.UserID, map[string]any{
		"Amount": req.Amount.StringFixed(2),
	})
	return req, nil
}

// RejectDeposit 拒绝入金申请，不产生账本流水
func (s *FundingCommandService) RejectDeposit(ctx context.Context, id uint, note string) (*domain.DepositRequest, error) {
	req, err := s.depositRequests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}

	if err := req.Reject(ctx, note); err != nil {
		return nil, err
	}
	if err := s.depositRequests.CompleteReview(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, notifdomain.EventDepositRejected, req.UserID, map[string]any{
		"Amount": req.Amount.StringFixed(2),
		"Note":   req.AdminNote,
	})
	return req, nil
}

// ApproveWithdrawal 审批通过出金申请并为钱包记一笔负数流水
func (s *FundingCommandService) ApproveWithdrawal(ctx context.Context, id uint) (*domain.WithdrawalRequest, error) {
	var req *domain.WithdrawalRequest
	err := s.withdrawalRequests.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.withdrawalRequests.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}

		if err := req.Approve(txCtx); err != nil {
			return err
		}
		if err := s.withdrawalRequests.CompleteReview(txCtx, req); err != nil {
			return err
		}

		entry := walletdomain.NewWithdrawalEntry(req.UserID, req.Amount, req.ID, "Withdrawal approved by admin")
		return s.ledger.Append(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notifdomain.EventWithdrawalApproved, req.UserID, map[string]any{
		"Amount": req.Amount.StringFixed(2),
	})
	return req, nil
}

// RejectWithdrawal 拒绝出金申请
func (s *FundingCommandService) RejectWithdrawal(ctx context.Context, id uint, note string) (*domain.WithdrawalRequest, error) {
	req, err := s.withdrawalRequests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}

	if err := req.Reject(ctx, note); err != nil {
		return nil, err
	}
	if err := s.withdrawalRequests.CompleteReview(ctx, req); err != nil {
		return nil, err
	}

	s.notify(ctx, notifdomain.EventWithdrawalRejected, req.UserID, map[string]any{
		"Amount": req.Amount.StringFixed(2),
		"Note":   req.AdminNote,
	})
	return req, nil
}

// AddWithdrawalMethod 客户新增出金账户，创建即 active
func (s *FundingCommandService) AddWithdrawalMethod(ctx context.Context, method *domain.WithdrawalMethod) error {
	method.Status = domain.MethodActive
	return s.withdrawalMethods.Save(ctx, method)
}

// RemoveWithdrawalMethod 客户删除自己的出金账户
func (s *FundingCommandService) RemoveWithdrawalMethod(ctx context.Context, id, userID uint) error {
	return s.withdrawalMethods.Delete(ctx, id, userID)
}

// notify 补齐账户展示信息后派发通知，查询失败只记录不阻断
func (s *FundingCommandService) notify(ctx context.Context, event notifdomain.EventType, userID uint, params map[string]any) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		logging.Error(ctx, "Failed to resolve notification recipient", "user_id", userID, "event", string(event), "error", err)
		return
	}
	params["FullName"] = user.FullName
	s.notifier.Dispatch(ctx, event, userID, user.Email, params)
}
