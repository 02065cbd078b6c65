// Package application 管理端的账户管理服务。
package application

import (
	"context"
	"errors"
	"fmt"

	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	fundingdomain "github.com/wyfcoding/tradersroom/internal/funding/domain"
	kycdomain "github.com/wyfcoding/tradersroom/internal/kyc/domain"
	walletdomain "github.com/wyfcoding/tradersroom/internal/wallet/domain"
	"golang.org/x/crypto/bcrypt"
)

// ErrMissingUserFields 姓名、邮箱或密码缺失
var ErrMissingUserFields = errors.New("full name, email and password are required")

// CreateUserCommand 管理员创建账户
type CreateUserCommand struct {
	FullName      string
	Email         string
	PhoneNumber   string
	CountryCode   string
	Password      string
	Role          authdomain.UserRole
	EmailVerified bool
}

// UpdateUserCommand 管理员更新账户，nil 字段保持不变
type UpdateUserCommand struct {
	FullName      *string
	Email         *string
	PhoneNumber   *string
	CountryCode   *string
	Role          *authdomain.UserRole
	EmailVerified *bool
	Password      *string
}

// UserDetail 账户详情及其名下的业务对象
type UserDetail struct {
	User              *authdomain.User                  `json:"user"`
	KycDocuments      []*kycdomain.KycDocument          `json:"kyc_documents"`
	DepositRequests   []*fundingdomain.DepositRequest   `json:"deposit_requests"`
	Transactions      []*walletdomain.WalletTransaction `json:"transactions"`
	WithdrawalMethods []*fundingdomain.WithdrawalMethod `json:"withdrawal_methods"`
}

// UserAdminService 账户管理服务
type UserAdminService struct {
	users             authdomain.UserRepository
	kycDocs           kycdomain.KycDocumentRepository
	depositRequests   fundingdomain.DepositRequestRepository
	ledger            walletdomain.LedgerRepository
	withdrawalMethods fundingdomain.WithdrawalMethodRepository
}

// NewUserAdminService 创建账户管理服务实例
func NewUserAdminService(
	users authdomain.UserRepository,
	kycDocs kycdomain.KycDocumentRepository,
	depositRequests fundingdomain.DepositRequestRepository,
	ledger walletdomain.LedgerRepository,
	withdrawalMethods fundingdomain.WithdrawalMethodRepository,
) *UserAdminService {
	return &UserAdminService{
		users:             users,
		kycDocs:           kycDocs,
		depositRequests:   depositRequests,
		ledger:            ledger,
		withdrawalMethods: withdrawalMethods,
	}
}

// Create 管理员直接创建账户，不走邮箱验证流程
func (s *UserAdminService) Create(ctx context.Context, cmd CreateUserCommand) (*authdomain.User, error) {
	if cmd.FullName == "" || cmd.Email == "" || cmd.Password == "" {
		return nil, ErrMissingUserFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *authdomain.User
	err = s.users.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.users.GetByEmail(txCtx, cmd.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return authdomain.ErrEmailTaken
		}

		user = authdomain.NewUser(cmd.FullName, cmd.Email, string(hash))
		user.PhoneNumber = cmd.PhoneNumber
		user.CountryCode = cmd.CountryCode
		user.EmailVerified = cmd.EmailVerified
		if cmd.Role != "" {
			user.Role = cmd.Role
		}
		return s.users.Save(txCtx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List 分页列出账户
func (s *UserAdminService) List(ctx context.Context, limit, offset int) ([]*authdomain.User, int64, error) {
	return s.users.List(ctx, limit, offset)
}

// Get 查询账户详情及其名下的 KYC、入金申请、钱包流水和出金账户
func (s *UserAdminService) Get(ctx context.Context, id uint) (*UserDetail, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrNotFound
	}

	detail := &UserDetail{User: user}

	if detail.KycDocuments, err = s.kycDocs.ListByUser(ctx, id); err != nil {
		return nil, err
	}
	if detail.DepositRequests, _, err = s.depositRequests.ListByUser(ctx, id, -1, 0); err != nil {
		return nil, err
	}
	if detail.Transactions, _, err = s.ledger.List(ctx, id, -1, 0); err != nil {
		return nil, err
	}
	if detail.WithdrawalMethods, err = s.withdrawalMethods.ListByUser(ctx, id); err != nil {
		return nil, err
	}
	return detail, nil
}

// Update 更新账户，换邮箱时做唯一性校验
func (s *UserAdminService) Update(ctx context.Context, id uint, cmd UpdateUserCommand) (*authdomain.User, error) {
	var user *authdomain.User
	err := s.users.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.users.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return authdomain.ErrNotFound
		}

		if cmd.Email != nil && *cmd.Email != user.Email {
			existing, err := s.users.GetByEmail(txCtx, *cmd.Email)
			if err != nil {
				return err
			}
			if existing != nil {
				return authdomain.ErrEmailTaken
			}
			user.Email = *cmd.Email
		}

		if cmd.FullName != nil {
			user.FullName = *cmd.FullName
		}
		if cmd.PhoneNumber != nil {
			user.PhoneNumber = *cmd.PhoneNumber
		}
		if cmd.CountryCode != nil {
			user.CountryCode = *cmd.CountryCode
		}
		if cmd.Role != nil {
			user.Role = *cmd.Role
		}
		if cmd.EmailVerified != nil {
			user.EmailVerified = *cmd.EmailVerified
		}
		if cmd.Password != nil && *cmd.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*cmd.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.PasswordHash = string(hash)
		}

		return s.users.Save(txCtx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete 删除账户
func (s *UserAdminService) Delete(ctx context.Context, id uint) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return authdomain.ErrNotFound
	}
	return s.users.Delete(ctx, id)
}
