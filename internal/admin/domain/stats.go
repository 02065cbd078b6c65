// Package domain 管理端仪表盘的聚合统计。
package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// UserStats 账户统计
type UserStats struct {
	Total          int64 `json:"total"`
	Admins         int64 `json:"admins"`
	VerifiedEmails int64 `json:"verified_emails"`
}

// RequestStats 申请单统计，金额只累计已通过的
type RequestStats struct {
	Total       int64           `json:"total"`
	Pending     int64           `json:"pending"`
	Approved    int64           `json:"approved"`
	Rejected    int64           `json:"rejected"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// WalletStats 钱包流水统计
type WalletStats struct {
	TotalTransactions int64           `json:"total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}

// KycStats 证件统计
type KycStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// TicketStats 工单统计，closed 含 resolved
type TicketStats struct {
	Total  int64 `json:"total"`
	Open   int64 `json:"open"`
	Closed int64 `json:"closed"`
}

// DashboardStats 仪表盘总览
type DashboardStats struct {
	Users       UserStats    `json:"users"`
	Deposits    RequestStats `json:"deposits"`
	Withdrawals RequestStats `json:"withdrawals"`
	Wallet      WalletStats  `json:"wallet"`
	Kyc         KycStats     `json:"kyc"`
	Tickets     TicketStats  `json:"tickets"`
}

// StatsRepository 仪表盘统计读模型
type StatsRepository interface {
	Collect(ctx context.Context) (*DashboardStats, error)
}
