package application

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	authmysql "github.com/wyfcoding/tradersroom/internal/auth/infrastructure/persistence/mysql"
	"github.com/wyfcoding/tradersroom/internal/funding/domain"
	fundingmysql "github.com/wyfcoding/tradersroom/internal/funding/infrastructure/persistence/mysql"
	"github.com/wyfcoding/tradersroom/internal/review"
	walletdomain "github.com/wyfcoding/tradersroom/internal/wallet/domain"
	walletmysql "github.com/wyfcoding/tradersroom/internal/wallet/infrastructure/persistence/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fundingFixture struct {
	db     *gorm.DB
	svc    *FundingCommandService
	ledger walletdomain.LedgerRepository
}

func newFundingFixture(t *testing.T) *fundingFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&walletdomain.WalletTransaction{},
		&domain.DepositMethod{},
		&domain.DepositMethodBankDetail{},
		&domain.DepositMethodCryptoDetail{},
		&domain.DepositMethodOtherDetail{},
		&domain.DepositRequest{},
		&domain.WithdrawalMethod{},
		&domain.WithdrawalRequest{},
	))

	ledger := walletmysql.NewLedgerRepository(db)
	svc := NewFundingCommandService(
		fundingmysql.NewDepositRequestRepository(db),
		fundingmysql.NewWithdrawalRequestRepository(db),
		fundingmysql.NewDepositMethodRepository(db),
		fundingmysql.NewWithdrawalMethodRepository(db),
		ledger,
		authmysql.NewUserRepository(db),
		nil,
	)
	return &fundingFixture{db: db, svc: svc, ledger: ledger}
}

func (f *fundingFixture) activeDepositMethod(t *testing.T) *domain.DepositMethod {
	t.Helper()
	method := &domain.DepositMethod{Type: domain.MethodBank, Name: "Wire Transfer", Status: domain.MethodActive}
	require.NoError(t, f.db.Create(method).Error)
	return method
}

func (f *fundingFixture) activeWithdrawalMethod(t *testing.T, userID uint) *domain.WithdrawalMethod {
	t.Helper()
	method := &domain.WithdrawalMethod{
		UserID: userID,
		Type:   domain.MethodBank,
		Status: domain.MethodActive,
	}
	require.NoError(t, f.db.Create(method).Error)
	return method
}

func (f *fundingFixture) ledgerEntries(t *testing.T, userID uint) []*walletdomain.WalletTransaction {
	t.Helper()
	entries, _, err := f.ledger.List(context.Background(), userID, -1, 0)
	require.NoError(t, err)
	return entries
}

func TestSubmitDepositRejectsNonPositiveAmount(t *testing.T) {
	f := newFundingFixture(t)
	method := f.activeDepositMethod(t)

	_, err := f.svc.SubmitDeposit(context.Background(), SubmitDepositCommand{
		UserID:   1,
		MethodID: method.ID,
		Amount:   decimal.Zero,
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestSubmitDepositRejectsInactiveMethod(t *testing.T) {
	f := newFundingFixture(t)
	method := &domain.DepositMethod{Type: domain.MethodBank, Name: "Closed", Status: domain.MethodInactive}
	require.NoError(t, f.db.Create(method).Error)

	_, err := f.svc.SubmitDeposit(context.Background(), SubmitDepositCommand{
		UserID:   1,
		MethodID: method.ID,
		Amount:   decimal.NewFromInt(50),
	})
	require.ErrorIs(t, err, domain.ErrMethodInactive)
}

func TestApproveDepositCreditsWallet(t *testing.T) {
	f := newFundingFixture(t)
	ctx := context.Background()
	method := f.activeDepositMethod(t)

	req, err := f.svc.SubmitDeposit(ctx, SubmitDepositCommand{
		UserID:   1,
		MethodID: method.ID,
		Amount:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	require.Equal(t, review.StatusPending, req.Status)
	require.NotEmpty(t, req.RequestNo)

	approved, err := f.svc.ApproveDeposit(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, review.StatusApproved, approved.Status)

	entries := f.ledgerEntries(t, 1)
	require.Len(t, entries, 1)
	require.True(t, entries[0].Amount.Equal(decimal.NewFromInt(50)))
	require.Equal(t, "Deposit approved by admin", entries[0].Description)

	balance, err := f.ledger.Balance(ctx, 1)
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.NewFromInt(50)))
}

func TestApproveDepositTwiceFailsWithoutDoubleCredit(t *testing.T) {
	f := newFundingFixture(t)
	ctx := context.Background()
	method := f.activeDepositMethod(t)

	req, err := f.svc.SubmitDeposit(ctx, SubmitDepositCommand{
		UserID:   1,
		MethodID: method.ID,
		Amount:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	_, err = f.svc.ApproveDeposit(ctx, req.ID)
	require.NoError(t, err)

	_, err = f.svc.ApproveDeposit(ctx, req.ID)
	require.ErrorIs(t, err, review.ErrInvalidState)

	require.Len(t, f.ledgerEntries(t, 1), 1)
}

func TestConcurrentApprovalsCreditOnce(t *testing.T) {
	f := newFundingFixture(t)
	ctx := context.Background()
	method := f.activeDepositMethod(t)

	// 单连接让两个审批事务依次拿到数据库里的当前状态
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	req, err := f.svc.SubmitDeposit(ctx, SubmitDepositCommand{
		UserID:   1,
		MethodID: method.ID,
		Amount:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ApproveDeposit(ctx, req.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var approved, refused int
	for err := range errs {
		if err == nil {
			approved++
			continue
		}
		require.ErrorIs(t, err, review.ErrInvalidState)
		refused++
	}
	require.Equal(t, 1, approved)
	require.Equal(t, 1, refused)
	require.Len(t, f.ledgerEntries(t, 1), 1)
}

func TestStaleApprovalCannotOverwriteDecision(t *testing.T) {
	f := newFundingFixture(t)
	ctx := context.Background()
	method := f.activeDepositMethod(t)

	req, err := f.svc.SubmitDeposit(ctx, SubmitDepositCommand{
		UserID:   1,
		MethodID: method.ID,
		Amount:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	// 竞争方在旧读上通过了内存状态校验
	repo := fundingmysql.NewDepositRequestRepository(f.db)
	stale, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	require.NoError(t, stale.Approve(ctx))

	_, err = f.svc.RejectDeposit(ctx, req.ID, "duplicate submission")
	require.NoError(t, err)

	// 条件更新对已进入终态的申请单不生效
	require.ErrorIs(t, repo.CompleteReview(ctx, stale), review.ErrInvalidState)

	fresh, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	require.Equal(t, review.StatusRejected, fresh.Status)
	require.Equal(t, "duplicate submission", fresh.AdminNote)
	require.Empty(t, f.ledgerEntries(t, 1))
}

func TestApproveWithdrawalDebitsWallet(t *testing.T) {
	f := newFundingFixture(t)
	ctx := context.Background()
	method := f.activeWithdrawalMethod(t, 1)

	req, err := f.svc.SubmitWithdrawal(ctx, SubmitWithdrawalCommand{
		UserID:   1,
		MethodID: method.ID,
		Amount:   decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	_, err = f.svc.ApproveWithdrawal(ctx, req.ID)
	require.NoError(t, err)

	entries := f.ledgerEntries(t, 1)
	require.Len(t, entries, 1)
	require.True(t, entries[0].Amount.Equal(decimal.NewFromInt(-40)))
	require.Equal(t, "Withdrawal approved by admin", entries[0].Description)
}

func TestSubmitWithdrawalRequiresOwnActiveMethod(t *testing.T) {
	f := newFundingFixture(t)
	ctx := context.Background()
	// 出金账户属于账户 2，账户 1 不可用
	method := f.activeWithdrawalMethod(t, 2)

	_, err := f.svc.SubmitWithdrawal(ctx, SubmitWithdrawalCommand{
		UserID:   1,
		MethodID: method.ID,
		Amount:   decimal.NewFromInt(10),
	})
	require.ErrorIs(t, err, domain.ErrMethodInactive)
}

func TestRejectDepositUsesDefaultNote(t *testing.T) {
	f := newFundingFixture(t)
	ctx := context.Background()
	method := f.activeDepositMethod(t)

	req, err := f.svc.SubmitDeposit(ctx, SubmitDepositCommand{
		UserID:   1,
		MethodID: method.ID,
		Amount:   decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	rejected, err := f.svc.RejectDeposit(ctx, req.ID, "")
	require.NoError(t, err)
	require.Equal(t, review.StatusRejected, rejected.Status)
	require.Equal(t, review.DefaultRejectNote, rejected.AdminNote)

	// 拒绝不产生账本流水
	require.Empty(t, f.ledgerEntries(t, 1))
}

func TestRejectWithdrawalKeepsCustomNote(t *testing.T) {
	f := newFundingFixture(t)
	ctx := context.Background()
	method := f.activeWithdrawalMethod(t, 1)

	req, err := f.svc.SubmitWithdrawal(ctx, SubmitWithdrawalCommand{
		UserID:   1,
		MethodID: method.ID,
		Amount:   decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	rejected, err := f.svc.RejectWithdrawal(ctx, req.ID, "bank details mismatch")
	require.NoError(t, err)
	require.Equal(t, "bank details mismatch", rejected.AdminNote)
}
