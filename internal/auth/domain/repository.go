package domain

import "context"

// UserRepository 账户仓储
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByVerificationToken(ctx context.Context, token string) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	List(ctx context.Context, limit, offset int) ([]*User, int64, error)
	Delete(ctx context.Context, id uint) error
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
