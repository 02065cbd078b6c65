package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/tradersroom/internal/auth/domain"
	authmysql "github.com/wyfcoding/tradersroom/internal/auth/infrastructure/persistence/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*AuthCommandService, domain.UserRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	repo := authmysql.NewUserRepository(db)
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	return NewAuthCommandService(repo, issuer, nil, "http://localhost:8080"), repo
}

func register(t *testing.T, svc *AuthCommandService, email string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterCommand{
		FullName: "Jane Trader",
		Email:    email,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterIssuesVerificationToken(t *testing.T) {
	svc, _ := newAuthService(t)

	user := register(t, svc, "jane@example.com")
	require.Equal(t, domain.RoleClient, user.Role)
	require.False(t, user.EmailVerified)
	require.NotEmpty(t, user.VerificationToken)
	require.NotEqual(t, "correct-horse", user.PasswordHash, "password must be stored hashed")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	register(t, svc, "jane@example.com")

	_, err := svc.Register(context.Background(), RegisterCommand{
		FullName: "Other",
		Email:    "jane@example.com",
		Password: "another-pass",
	})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginRefusedUntilEmailVerified(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	user := register(t, svc, "jane@example.com")

	_, _, _, err := svc.Login(ctx, LoginCommand{Email: "jane@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, domain.ErrEmailNotVerified)

	require.NoError(t, svc.VerifyEmail(ctx, user.VerificationToken))

	token, expiresAt, loggedIn, err := svc.Login(ctx, LoginCommand{Email: "jane@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Greater(t, expiresAt, time.Now().Unix())
	require.Equal(t, user.ID, loggedIn.ID)
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	user := register(t, svc, "jane@example.com")
	require.NoError(t, svc.VerifyEmail(ctx, user.VerificationToken))

	_, _, _, err := svc.Login(ctx, LoginCommand{Email: "jane@example.com", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, _, err = svc.Login(ctx, LoginCommand{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerificationTokenIsSingleUse(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	user := register(t, svc, "jane@example.com")

	require.NoError(t, svc.VerifyEmail(ctx, user.VerificationToken))
	require.ErrorIs(t, svc.VerifyEmail(ctx, user.VerificationToken), domain.ErrInvalidToken)
}

func TestForgotPasswordIsSilentForUnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	require.NoError(t, svc.ForgotPassword(context.Background(), "nobody@example.com"))
}

func TestResetPasswordFlow(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()
	user := register(t, svc, "jane@example.com")
	require.NoError(t, svc.VerifyEmail(ctx, user.VerificationToken))

	require.NoError(t, svc.ForgotPassword(ctx, "jane@example.com"))

	stored, err := repo.GetByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, stored.ResetToken)

	require.NoError(t, svc.ResetPassword(ctx, stored.ResetToken, "new-password"))

	_, _, _, err = svc.Login(ctx, LoginCommand{Email: "jane@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, _, err = svc.Login(ctx, LoginCommand{Email: "jane@example.com", Password: "new-password"})
	require.NoError(t, err)

	// 重置令牌一次性有效
	require.ErrorIs(t, svc.ResetPassword(ctx, stored.ResetToken, "again"), domain.ErrInvalidToken)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()
	user := register(t, svc, "jane@example.com")

	expired := time.Now().Add(-time.Minute)
	user.ResetToken = "stale-token"
	user.ResetTokenExpiry = &expired
	require.NoError(t, repo.Save(ctx, user))

	require.ErrorIs(t, svc.ResetPassword(ctx, "stale-token", "pw"), domain.ErrInvalidToken)
}

func TestChangePasswordVerifiesOldPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	user := register(t, svc, "jane@example.com")

	err := svc.ChangePassword(ctx, ChangePasswordCommand{UserID: user.ID, OldPassword: "wrong", NewPassword: "next"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, ChangePasswordCommand{UserID: user.ID, OldPassword: "correct-horse", NewPassword: "next-password"})
	require.NoError(t, err)
}
