package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	authmysql "github.com/wyfcoding/tradersroom/internal/auth/infrastructure/persistence/mysql"
	"github.com/wyfcoding/tradersroom/internal/kyc/domain"
	kycmysql "github.com/wyfcoding/tradersroom/internal/kyc/infrastructure/persistence/mysql"
	"github.com/wyfcoding/tradersroom/internal/review"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newKycService(t *testing.T) *KycService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &domain.KycDocument{}))

	return NewKycService(kycmysql.NewKycDocumentRepository(db), authmysql.NewUserRepository(db), nil)
}

func TestUploadRejectsInvalidInput(t *testing.T) {
	svc := newKycService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, UploadCommand{UserID: 1, DocumentType: domain.DocIDCard})
	require.ErrorIs(t, err, domain.ErrMissingDocument)

	_, err = svc.Upload(ctx, UploadCommand{UserID: 1, DocumentType: "passport", DocumentPath: "kyc/p.png"})
	require.ErrorIs(t, err, domain.ErrInvalidDocumentType)
}

func TestUploadCreatesPendingDocument(t *testing.T) {
	svc := newKycService(t)

	doc, err := svc.Upload(context.Background(), UploadCommand{
		UserID:       1,
		DocumentType: domain.DocIDCard,
		DocumentPath: "kyc/id-front.png",
	})
	require.NoError(t, err)
	require.Equal(t, review.StatusPending, doc.Status)
	require.Equal(t, "kyc/id-front.png", doc.DocumentPath)
}

func TestReuploadReplacesAndResetsReview(t *testing.T) {
	svc := newKycService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, UploadCommand{UserID: 1, DocumentType: domain.DocIDCard, DocumentPath: "kyc/v1.png"})
	require.NoError(t, err)

	_, err = svc.Reject(ctx, doc.ID, "document unreadable")
	require.NoError(t, err)

	replaced, err := svc.Upload(ctx, UploadCommand{UserID: 1, DocumentType: domain.DocIDCard, DocumentPath: "kyc/v2.png"})
	require.NoError(t, err)
	require.Equal(t, doc.ID, replaced.ID, "same document row is reused")
	require.Equal(t, review.StatusPending, replaced.Status)
	require.Equal(t, "kyc/v2.png", replaced.DocumentPath)
	require.Empty(t, replaced.AdminNote)
	require.Nil(t, replaced.VerifiedAt)

	docs, err := svc.Documents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestApproveStampsVerifiedAt(t *testing.T) {
	svc := newKycService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, UploadCommand{UserID: 1, DocumentType: domain.DocUtilityBill, DocumentPath: "kyc/bill.pdf"})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, review.StatusApproved, approved.Status)
	require.NotNil(t, approved.VerifiedAt)

	// 已审核的证件不允许再次审核
	_, err = svc.Approve(ctx, doc.ID)
	require.ErrorIs(t, err, review.ErrInvalidState)
}

func TestIdentityAndAddressChecks(t *testing.T) {
	svc := newKycService(t)
	ctx := context.Background()

	ok, err := svc.HasApprovedIdentity(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)

	id, err := svc.Upload(ctx, UploadCommand{UserID: 1, DocumentType: domain.DocDriversLicense, DocumentPath: "kyc/dl.png"})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, id.ID)
	require.NoError(t, err)

	ok, err = svc.HasApprovedIdentity(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)

	// 驾照不能充当地址证明
	ok, err = svc.HasApprovedAddress(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)

	bill, err := svc.Upload(ctx, UploadCommand{UserID: 1, DocumentType: domain.DocUtilityBill, DocumentPath: "kyc/bill.pdf"})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, bill.ID)
	require.NoError(t, err)

	ok, err = svc.HasApprovedAddress(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
}
