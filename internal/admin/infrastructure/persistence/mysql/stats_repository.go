package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	admindomain "github.com/wyfcoding/tradersroom/internal/admin/domain"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	fundingdomain "github.com/wyfcoding/tradersroom/internal/funding/domain"
	kycdomain "github.com/wyfcoding/tradersroom/internal/kyc/domain"
	"github.com/wyfcoding/tradersroom/internal/review"
	supportdomain "github.com/wyfcoding/tradersroom/internal/support/domain"
	walletdomain "github.com/wyfcoding/tradersroom/internal/wallet/domain"
	"gorm.io/gorm"
)

type statsRepository struct{ db *gorm.DB }

// NewStatsRepository 创建仪表盘统计仓储
func NewStatsRepository(db *gorm.DB) admindomain.StatsRepository {
	return &statsRepository{db: db}
}

// Collect 汇总各模块的计数与金额
func (r *statsRepository) Collect(ctx context.Context) (*admindomain.DashboardStats, error) {
	stats := &admindomain.DashboardStats{}
	db := r.db.WithContext(ctx)

	if err := r.collectUsers(db, &stats.Users); err != nil {
		return nil, err
	}
	if err := r.requestStats(db, &fundingdomain.DepositRequest{}, &stats.Deposits); err != nil {
		return nil, err
	}
	if err := r.requestStats(db, &fundingdomain.WithdrawalRequest{}, &stats.Withdrawals); err != nil {
		return nil, err
	}
	if err := r.collectWallet(db, &stats.Wallet); err != nil {
		return nil, err
	}
	if err := r.collectKyc(db, &stats.Kyc); err != nil {
		return nil, err
	}
	if err := r.collectTickets(db, &stats.Tickets); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *statsRepository) collectUsers(db *gorm.DB, out *admindomain.UserStats) error {
	if err := db.Model(&authdomain.User{}).Count(&out.Total).Error; err != nil {
		return err
	}
	if err := db.Model(&authdomain.User{}).Where("role = ?", authdomain.RoleAdmin).Count(&out.Admins).Error; err != nil {
		return err
	}
	return db.Model(&authdomain.User{}).Where("email_verified = ?", true).Count(&out.VerifiedEmails).Error
}

func (r *statsRepository) requestStats(db *gorm.DB, model any, out *admindomain.RequestStats) error {
	if err := db.Model(model).Count(&out.Total).Error; err != nil {
		return err
	}
	for status, dst := range map[review.Status]*int64{
		review.StatusPending:  &out.Pending,
		review.StatusApproved: &out.Approved,
		review.StatusRejected: &out.Rejected,
	} {
		if err := db.Model(model).Where("status = ?", status).Count(dst).Error; err != nil {
			return err
		}
	}

	var total decimal.Decimal
	err := db.Model(model).
		Where("status = ?", review.StatusApproved).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	out.TotalAmount = total
	return nil
}

func (r *statsRepository) collectWallet(db *gorm.DB, out *admindomain.WalletStats) error {
	if err := db.Model(&walletdomain.WalletTransaction{}).Count(&out.TotalTransactions).Error; err != nil {
		return err
	}
	var total decimal.Decimal
	err := db.Model(&walletdomain.WalletTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	out.TotalAmount = total
	return nil
}

func (r *statsRepository) collectKyc(db *gorm.DB, out *admindomain.KycStats) error {
	if err := db.Model(&kycdomain.KycDocument{}).Count(&out.Total).Error; err != nil {
		return err
	}
	for status, dst := range map[review.Status]*int64{
		review.StatusPending:  &out.Pending,
		review.StatusApproved: &out.Approved,
		review.StatusRejected: &out.Rejected,
	} {
		if err := db.Model(&kycdomain.KycDocument{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *statsRepository) collectTickets(db *gorm.DB, out *admindomain.TicketStats) error {
	if err := db.Model(&supportdomain.SupportTicket{}).Count(&out.Total).Error; err != nil {
		return err
	}
	if err := db.Model(&supportdomain.SupportTicket{}).
		Where("status = ?", supportdomain.StatusOpen).
		Count(&out.Open).Error; err != nil {
		return err
	}
	return db.Model(&supportdomain.SupportTicket{}).
		Where("status IN ?", []supportdomain.TicketStatus{supportdomain.StatusResolved, supportdomain.StatusClosed}).
		Count(&out.Closed).Error
}
