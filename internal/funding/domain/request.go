package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/tradersroom/internal/review"
)

var (
	// ErrNotFound 申请单或渠道不存在
	ErrNotFound = errors.New("funding record not found")
	// ErrMethodInactive 渠道或出金账户不存在或已停用
	ErrMethodInactive = errors.New("method not found or inactive")
	// ErrInvalidAmount 金额缺失或非正数
	ErrInvalidAmount = errors.New("amount must be positive")
)

// DepositRequest 入金申请单。客户提交即 pending，管理员审核一次后进入终态。
type DepositRequest struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	// RequestNo 对外展示的申请单号
	RequestNo            string          `json:"request_no" gorm:"column:request_no;type:varchar(32);uniqueIndex;not null"`
	UserID               uint            `json:"user_id" gorm:"column:user_id;index;not null"`
	MethodID             uint            `json:"method_id" gorm:"column:method_id;not null"`
	Amount               decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(15,2);not null"`
	TransactionReference string          `json:"transaction_reference,omitempty" gorm:"column:transaction_reference;type:varchar(100)"`
	// ProofPath 转账凭证文件路径
	ProofPath string        `json:"proof_path,omitempty" gorm:"column:proof_path;type:varchar(255)"`
	Status    review.Status `json:"status" gorm:"column:status;type:varchar(10);index;not null;default:'pending'"`
	AdminNote string        `json:"admin_note,omitempty" gorm:"column:admin_note;type:text"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (DepositRequest) TableName() string { return "deposit_requests" }

// NewDepositRequest 创建 pending 状态的入金申请单
func NewDepositRequest(userID, methodID uint, amount decimal.Decimal, transactionReference, proofPath string) *DepositRequest {
	return &DepositRequest{
		RequestNo:            idgen.GenIDString(),
		UserID:               userID,
		MethodID:             methodID,
		Amount:               amount,
		TransactionReference: transactionReference,
		ProofPath:            proofPath,
		Status:               review.StatusPending,
	}
}

// Approve 审批通过，非 pending 状态返回 review.ErrInvalidState
func (r *DepositRequest) Approve(ctx context.Context) error {
	if err := review.NewMachine(r.Status).Approve(ctx); err != nil {
		return err
	}
	r.Status = review.StatusApproved
	return nil
}

// Reject 审批拒绝并记录备注，未填写时使用缺省文案
func (r *DepositRequest) Reject(ctx context.Context, note string) error {
	if err := review.NewMachine(r.Status).Reject(ctx); err != nil {
		return err
	}
	r.Status = review.StatusRejected
	if note == "" {
		note = review.DefaultRejectNote
	}
	r.AdminNote = note
	return nil
}

// WithdrawalRequest 出金申请单
type WithdrawalRequest struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	RequestNo string          `json:"request_no" gorm:"column:request_no;type:varchar(32);uniqueIndex;not null"`
	UserID    uint            `json:"user_id" gorm:"column:user_id;index;not null"`
	MethodID  uint            `json:"method_id" gorm:"column:method_id;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(15,2);not null"`
	// Note 客户提交时附言
	Note      string        `json:"note,omitempty" gorm:"column:note;type:text"`
	Status    review.Status `json:"status" gorm:"column:status;type:varchar(10);index;not null;default:'pending'"`
	AdminNote string        `json:"admin_note,omitempty" gorm:"column:admin_note;type:text"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (WithdrawalRequest) TableName() string { return "withdrawal_requests" }

// NewWithdrawalRequest 创建 pending 状态的出金申请单
func NewWithdrawalRequest(userID, methodID uint, amount decimal.Decimal, note string) *WithdrawalRequest {
	return &WithdrawalRequest{
		RequestNo: idgen.GenIDString(),
		UserID:    userID,
		MethodID:  methodID,
		Amount:    amount,
		Note:      note,
		Status:    review.StatusPending,
	}
}

// Approve 审批通过，非 pending 状态返回 review.ErrInvalidState
func (r *WithdrawalRequest) Approve(ctx context.Context) error {
	if err := review.NewMachine(r.Status).Approve(ctx); err != nil {
		return err
	}
	r.Status = review.StatusApproved
	return nil
}

// Reject 审批拒绝并记录备注
func (r *WithdrawalRequest) Reject(ctx context.Context, note string) error {
	if err := review.NewMachine(r.Status).Reject(ctx); err != nil {
		return err
	}
	r.Status = review.StatusRejected
	if note == "" {
		note = review.DefaultRejectNote
	}
	r.AdminNote = note
	return nil
}
