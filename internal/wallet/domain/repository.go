package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerRepository 账本仓储。只有 Append 一个写入口，没有更新和删除。
type LedgerRepository interface {
	// Append 追加一条流水
	Append(ctx context.Context, entry *WalletTransaction) error
	// Balance 计算账户余额，没有流水时返回 0
	Balance(ctx context.Context, userID uint) (decimal.Decimal, error)
	// List 按创建时间倒序分页列出账户流水
	List(ctx context.Context, userID uint, limit, offset int) ([]*WalletTransaction, int64, error)
}
