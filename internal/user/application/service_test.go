package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	authmysql "github.com/wyfcoding/tradersroom/internal/auth/infrastructure/persistence/mysql"
	fundingdomain "github.com/wyfcoding/tradersroom/internal/funding/domain"
	fundingmysql "github.com/wyfcoding/tradersroom/internal/funding/infrastructure/persistence/mysql"
	kycdomain "github.com/wyfcoding/tradersroom/internal/kyc/domain"
	kycmysql "github.com/wyfcoding/tradersroom/internal/kyc/infrastructure/persistence/mysql"
	walletdomain "github.com/wyfcoding/tradersroom/internal/wallet/domain"
	walletmysql "github.com/wyfcoding/tradersroom/internal/wallet/infrastructure/persistence/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newUserAdminService(t *testing.T) (*UserAdminService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&walletdomain.WalletTransaction{},
		&fundingdomain.DepositRequest{},
		&fundingdomain.WithdrawalMethod{},
		&kycdomain.KycDocument{},
	))

	svc := NewUserAdminService(
		authmysql.NewUserRepository(db),
		kycmysql.NewKycDocumentRepository(db),
		fundingmysql.NewDepositRequestRepository(db),
		walletmysql.NewLedgerRepository(db),
		fundingmysql.NewWithdrawalMethodRepository(db),
	)
	return svc, db
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc, _ := newUserAdminService(t)

	_, err := svc.Create(context.Background(), CreateUserCommand{FullName: "Jane", Email: "jane@x.com"})
	require.ErrorIs(t, err, ErrMissingUserFields)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newUserAdminService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserCommand{FullName: "Jane", Email: "jane@x.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserCommand{FullName: "Other", Email: "jane@x.com", Password: "password2"})
	require.ErrorIs(t, err, authdomain.ErrEmailTaken)
}

func TestCreateAdminSkipsVerificationFlow(t *testing.T) {
	svc, _ := newUserAdminService(t)

	user, err := svc.Create(context.Background(), CreateUserCommand{
		FullName:      "Ops",
		Email:         "ops@x.com",
		Password:      "password1",
		Role:          authdomain.RoleAdmin,
		EmailVerified: true,
	})
	require.NoError(t, err)
	require.Equal(t, authdomain.RoleAdmin, user.Role)
	require.True(t, user.EmailVerified)
}

func TestGetReturnsDetailWithOwnedObjects(t *testing.T) {
	svc, db := newUserAdminService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserCommand{FullName: "Jane", Email: "jane@x.com", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&kycdomain.KycDocument{UserID: user.ID, DocumentType: kycdomain.DocIDCard, DocumentPath: "p"}).Error)
	require.NoError(t, db.Create(fundingdomain.NewDepositRequest(user.ID, 1, decimal.NewFromInt(10), "", "")).Error)
	require.NoError(t, db.Create(walletdomain.NewDepositEntry(user.ID, decimal.NewFromInt(10), 1, "")).Error)
	require.NoError(t, db.Create(&fundingdomain.WithdrawalMethod{UserID: user.ID, Type: fundingdomain.MethodBank, Status: fundingdomain.MethodActive}).Error)

	detail, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, detail.User.ID)
	require.Len(t, detail.KycDocuments, 1)
	require.Len(t, detail.DepositRequests, 1)
	require.Len(t, detail.Transactions, 1)
	require.Len(t, detail.WithdrawalMethods, 1)
}

func TestUpdateOnlyTouchesProvidedFields(t *testing.T) {
	svc, _ := newUserAdminService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserCommand{FullName: "Jane", Email: "jane@x.com", Password: "password1", PhoneNumber: "123"})
	require.NoError(t, err)

	name := "Jane Senior"
	updated, err := svc.Update(ctx, user.ID, UpdateUserCommand{FullName: &name})
	require.NoError(t, err)
	require.Equal(t, "Jane Senior", updated.FullName)
	require.Equal(t, "jane@x.com", updated.Email)
	require.Equal(t, "123", updated.PhoneNumber)
}

func TestUpdateRejectsEmailCollision(t *testing.T) {
	svc, _ := newUserAdminService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserCommand{FullName: "A", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateUserCommand{FullName: "B", Email: "b@x.com", Password: "password1"})
	require.NoError(t, err)

	taken := "a@x.com"
	_, err = svc.Update(ctx, b.ID, UpdateUserCommand{Email: &taken})
	require.ErrorIs(t, err, authdomain.ErrEmailTaken)
}

func TestDeleteUnknownUser(t *testing.T) {
	svc, _ := newUserAdminService(t)
	require.ErrorIs(t, svc.Delete(context.Background(), 999), authdomain.ErrNotFound)
}
