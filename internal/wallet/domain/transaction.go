// Package domain 钱包账本的领域模型。
// 账本只追加，余额永远等于该账户全部流水的带符号金额之和。
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind 流水类型
type EntryKind string

const (
	EntryKindDeposit    EntryKind = "deposit"
	EntryKindWithdrawal EntryKind = "withdrawal"
	EntryKindAdjustment EntryKind = "adjustment"
)

// WalletTransaction 钱包流水，一经写入不可修改或删除
type WalletTransaction struct {
	ID     uint      `json:"id" gorm:"primaryKey"`
	UserID uint      `json:"user_id" gorm:"column:user_id;index;not null"`
	Kind   EntryKind `json:"type" gorm:"column:type;type:varchar(20);not null"`
	// Amount 带符号金额：提现流水为负数
	Amount      decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(15,2);not null"`
	ReferenceID uint            `json:"reference_id" gorm:"column:reference_id"`
	Description string          `json:"description" gorm:"column:description;type:text"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (WalletTransaction) TableName() string { return "wallet_transactions" }

// NewDepositEntry 入账流水，金额强制为正
func NewDepositEntry(userID uint, amount decimal.Decimal, referenceID uint, description string) *WalletTransaction {
	return &WalletTransaction{
		UserID:      userID,
		Kind:        EntryKindDeposit,
		Amount:      amount.Abs(),
		ReferenceID: referenceID,
		Description: description,
	}
}

// NewWithdrawalEntry 出账流水，无论调用方传入什么符号都按 -abs(amount) 记账
func NewWithdrawalEntry(userID uint, amount decimal.Decimal, referenceID uint, description string) *WalletTransaction {
	return &WalletTransaction{
		UserID:      userID,
		Kind:        EntryKindWithdrawal,
		Amount:      amount.Abs().Neg(),
		ReferenceID: referenceID,
		Description: description,
	}
}

// NewAdjustmentEntry 人工调整流水，保留调用方的符号
func NewAdjustmentEntry(userID uint, amount decimal.Decimal, description string) *WalletTransaction {
	return &WalletTransaction{
		UserID:      userID,
		Kind:        EntryKindAdjustment,
		Amount:      amount,
		Description: description,
	}
}
