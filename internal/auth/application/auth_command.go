package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wyfcoding/tradersroom/internal/auth/domain"
	notifdomain "github.com/wyfcoding/tradersroom/internal/notification/domain"
	"golang.org/x/crypto/bcrypt"
)

// RegisterCommand 注册命令
type RegisterCommand struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber string
	CountryCode string
	PromoCode   string
}

// LoginCommand 登录命令
type LoginCommand struct {
	Email    string
	Password string
}

// ChangePasswordCommand 修改密码命令
type ChangePasswordCommand struct {
	UserID      uint
	OldPassword string
	NewPassword string
}

// UpdateProfileCommand 更新资料命令
type UpdateProfileCommand struct {
	UserID      uint
	FullName    string
	PhoneNumber string
	CountryCode string
}

// AuthCommandService 账户命令服务
type AuthCommandService struct {
	repo     domain.UserRepository
	issuer   *TokenIssuer
	notifier notifdomain.Notifier
	// baseURL 构造验证/重置链接用的站点地址
	baseURL string
}

// NewAuthCommandService 创建账户命令服务实例
func NewAuthCommandService(repo domain.UserRepository, issuer *TokenIssuer, notifier notifdomain.Notifier, baseURL string) *AuthCommandService {
	return &AuthCommandService{
		repo:     repo,
		issuer:   issuer,
		notifier: notifier,
		baseURL:  baseURL,
	}
}

// Register 处理账户注册。邮箱查重和落库在同一事务内完成。
func (s *AuthCommandService) Register(ctx context.Context, cmd RegisterCommand) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user *domain.User
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByEmail(txCtx, cmd.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailTaken
		}

		user = domain.NewUser(cmd.FullName, cmd.Email, string(hash))
		user.PhoneNumber = cmd.PhoneNumber
		user.CountryCode = cmd.CountryCode
		user.PromoCode = cmd.PromoCode
		user.VerificationToken = uuid.NewString()

		return s.repo.Save(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Dispatch(ctx, notifdomain.EventUserRegistered, user.ID, user.Email, map[string]any{
			"FullName":  user.FullName,
			"VerifyURL": fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, user.VerificationToken),
		})
	}

	return user, nil
}

// Login 处理账户登录，未验证邮箱的账户拒绝签发令牌
func (s *AuthCommandService) Login(ctx context.Context, cmd LoginCommand) (string, int64, *domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return "", 0, nil, err
	}
	if user == nil {
		return "", 0, nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)); err != nil {
		return "", 0, nil, domain.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return "", 0, nil, domain.ErrEmailNotVerified
	}

	token, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return "", 0, nil, err
	}
	return token, expiresAt, user, nil
}

// VerifyEmail 验证邮箱，验证通过后令牌一次性作废
func (s *AuthCommandService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.repo.GetByVerificationToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidToken
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	return s.repo.Save(ctx, user)
}

// ForgotPassword 签发密码重置令牌。邮箱不存在时静默返回，不向调用方暴露账户是否存在。
func (s *AuthCommandService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	expiry := time.Now().Add(time.Hour)
	user.ResetToken = uuid.NewString()
	user.ResetTokenExpiry = &expiry
	if err := s.repo.Save(ctx, user); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.Dispatch(ctx, notifdomain.EventPasswordReset, user.ID, user.Email, map[string]any{
			"FullName": user.FullName,
			"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, user.ResetToken),
		})
	}
	return nil
}

// ResetPassword 凭重置令牌设置新密码
func (s *AuthCommandService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil || user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return domain.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	return s.repo.Save(ctx, user)
}

// ChangePassword 已登录账户修改密码，需要校验旧密码
func (s *AuthCommandService) ChangePassword(ctx context.Context, cmd ChangePasswordCommand) error {
	user, err := s.repo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.OldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	return s.repo.Save(ctx, user)
}

// UpdateProfile 更新账户资料，邮箱和角色不在此处修改
func (s *AuthCommandService) UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if cmd.FullName != "" {
		user.FullName = cmd.FullName
	}
	if cmd.PhoneNumber != "" {
		user.PhoneNumber = cmd.PhoneNumber
	}
	if cmd.CountryCode != "" {
		user.CountryCode = cmd.CountryCode
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
