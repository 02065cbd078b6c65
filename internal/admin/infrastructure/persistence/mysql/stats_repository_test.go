package mysql

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	fundingdomain "github.com/wyfcoding/tradersroom/internal/funding/domain"
	kycdomain "github.com/wyfcoding/tradersroom/internal/kyc/domain"
	"github.com/wyfcoding/tradersroom/internal/review"
	supportdomain "github.com/wyfcoding/tradersroom/internal/support/domain"
	walletdomain "github.com/wyfcoding/tradersroom/internal/wallet/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newStatsDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&walletdomain.WalletTransaction{},
		&fundingdomain.DepositRequest{},
		&fundingdomain.WithdrawalRequest{},
		&kycdomain.KycDocument{},
		&supportdomain.SupportTicket{},
	))
	return db
}

func TestCollectAggregatesAllSections(t *testing.T) {
	db := newStatsDB(t)

	require.NoError(t, db.Create(&authdomain.User{FullName: "A", Email: "a@x.com", PasswordHash: "h", Role: authdomain.RoleClient, EmailVerified: true}).Error)
	require.NoError(t, db.Create(&authdomain.User{FullName: "B", Email: "b@x.com", PasswordHash: "h", Role: authdomain.RoleAdmin}).Error)

	deposits := []*fundingdomain.DepositRequest{
		{RequestNo: "d1", UserID: 1, MethodID: 1, Amount: decimal.NewFromInt(100), Status: review.StatusApproved},
		{RequestNo: "d2", UserID: 1, MethodID: 1, Amount: decimal.NewFromInt(40), Status: review.StatusApproved},
		{RequestNo: "d3", UserID: 1, MethodID: 1, Amount: decimal.NewFromInt(999), Status: review.StatusPending},
		{RequestNo: "d4", UserID: 1, MethodID: 1, Amount: decimal.NewFromInt(5), Status: review.StatusRejected},
	}
	require.NoError(t, db.Create(&deposits).Error)

	withdrawals := []*fundingdomain.WithdrawalRequest{
		{RequestNo: "w1", UserID: 1, MethodID: 1, Amount: decimal.NewFromInt(30), Status: review.StatusApproved},
		{RequestNo: "w2", UserID: 1, MethodID: 1, Amount: decimal.NewFromInt(10), Status: review.StatusPending},
	}
	require.NoError(t, db.Create(&withdrawals).Error)

	require.NoError(t, db.Create(walletdomain.NewDepositEntry(1, decimal.NewFromInt(140), 1, "")).Error)
	require.NoError(t, db.Create(walletdomain.NewWithdrawalEntry(1, decimal.NewFromInt(30), 1, "")).Error)

	require.NoError(t, db.Create(&kycdomain.KycDocument{UserID: 1, DocumentType: kycdomain.DocIDCard, DocumentPath: "p", Status: review.StatusApproved}).Error)
	require.NoError(t, db.Create(&kycdomain.KycDocument{UserID: 1, DocumentType: kycdomain.DocUtilityBill, DocumentPath: "p", Status: review.StatusPending}).Error)

	tickets := []*supportdomain.SupportTicket{
		{UserID: 1, Subject: "s1", Category: supportdomain.CategoryGeneral, Status: supportdomain.StatusOpen},
		{UserID: 1, Subject: "s2", Category: supportdomain.CategoryGeneral, Status: supportdomain.StatusResolved},
		{UserID: 1, Subject: "s3", Category: supportdomain.CategoryGeneral, Status: supportdomain.StatusClosed},
	}
	require.NoError(t, db.Create(&tickets).Error)

	stats, err := NewStatsRepository(db).Collect(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 2, stats.Users.Total)
	require.EqualValues(t, 1, stats.Users.Admins)
	require.EqualValues(t, 1, stats.Users.VerifiedEmails)

	require.EqualValues(t, 4, stats.Deposits.Total)
	require.EqualValues(t, 1, stats.Deposits.Pending)
	require.EqualValues(t, 2, stats.Deposits.Approved)
	require.EqualValues(t, 1, stats.Deposits.Rejected)
	// 金额只累计已通过的申请单
	require.True(t, stats.Deposits.TotalAmount.Equal(decimal.NewFromInt(140)))

	require.EqualValues(t, 2, stats.Withdrawals.Total)
	require.True(t, stats.Withdrawals.TotalAmount.Equal(decimal.NewFromInt(30)))

	require.EqualValues(t, 2, stats.Wallet.TotalTransactions)
	require.True(t, stats.Wallet.TotalAmount.Equal(decimal.NewFromInt(110)))

	require.EqualValues(t, 2, stats.Kyc.Total)
	require.EqualValues(t, 1, stats.Kyc.Approved)
	require.EqualValues(t, 1, stats.Kyc.Pending)

	require.EqualValues(t, 3, stats.Tickets.Total)
	require.EqualValues(t, 1, stats.Tickets.Open)
	// resolved 和 closed 都算作已结
	require.EqualValues(t, 2, stats.Tickets.Closed)
}

func TestCollectOnEmptyDatabase(t *testing.T) {
	db := newStatsDB(t)

	stats, err := NewStatsRepository(db).Collect(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.Users.Total)
	require.True(t, stats.Deposits.TotalAmount.IsZero())
	require.True(t, stats.Wallet.TotalAmount.IsZero())
}
