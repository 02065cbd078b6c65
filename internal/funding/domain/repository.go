package domain

import "context"

// DepositMethodRepository 入金渠道仓储
type DepositMethodRepository interface {
	Save(ctx context.Context, method *DepositMethod) error
	GetByID(ctx context.Context, id uint) (*DepositMethod, error)
	List(ctx context.Context, limit, offset int) ([]*DepositMethod, int64, error)
	ListActive(ctx context.Context) ([]*DepositMethod, error)
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DepositRequestRepository 入金申请单仓储
type DepositRequestRepository interface {
	Save(ctx context.Context, req *DepositRequest) error
	GetByID(ctx context.Context, id uint) (*DepositRequest, error)
	// CompleteReview 以数据库中 status 仍为 pending 为条件写入审核结论，
	// 申请单已被另一次审核置为终态时返回 review.ErrInvalidState。
	CompleteReview(ctx context.Context, req *DepositRequest) error
	List(ctx context.Context, limit, offset int) ([]*DepositRequest, int64, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*DepositRequest, int64, error)
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// WithdrawalMethodRepository 出金账户仓储
type WithdrawalMethodRepository interface {
	Save(ctx context.Context, method *WithdrawalMethod) error
	GetByID(ctx context.Context, id uint) (*WithdrawalMethod, error)
	GetActiveForUser(ctx context.Context, id, userID uint) (*WithdrawalMethod, error)
	ListByUser(ctx context.Context, userID uint) ([]*WithdrawalMethod, error)
	ListActiveByUser(ctx context.Context, userID uint) ([]*WithdrawalMethod, error)
	Delete(ctx context.Context, id, userID uint) error
}

// WithdrawalRequestRepository 出金申请单仓储
type WithdrawalRequestRepository interface {
	Save(ctx context.Context, req *WithdrawalRequest) error
	GetByID(ctx context.Context, id uint) (*WithdrawalRequest, error)
	// CompleteReview 同 DepositRequestRepository.CompleteReview
	CompleteReview(ctx context.Context, req *WithdrawalRequest) error
	List(ctx context.Context, limit, offset int) ([]*WithdrawalRequest, int64, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*WithdrawalRequest, int64, error)
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
