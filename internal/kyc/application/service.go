package application

import (
	"context"

	"github.com/wyfcoding/pkg/logging"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	"github.com/wyfcoding/tradersroom/internal/kyc/domain"
	notifdomain "github.com/wyfcoding/tradersroom/internal/notification/domain"
	"github.com/wyfcoding/tradersroom/internal/review"
)

// UploadCommand 客户上传证件
type UploadCommand struct {
	UserID       uint
	DocumentType domain.DocumentType
	DocumentPath string
}

// KycService KYC 命令与查询服务。
// 上传对同一 (账户, 类型) 执行创建或覆盖，覆盖会把旧审核结论清掉。
type KycService struct {
	docs     domain.KycDocumentRepository
	users    authdomain.UserRepository
	notifier notifdomain.Notifier
}

// NewKycService 创建 KYC 服务实例
func NewKycService(docs domain.KycDocumentRepository, users authdomain.UserRepository, notifier notifdomain.Notifier) *KycService {
	return &KycService{docs: docs, users: users, notifier: notifier}
}

// Upload 上传证件，同类型已存在时覆盖旧文档并重置回 pending
func (s *KycService) Upload(ctx context.Context, cmd UploadCommand) (*domain.KycDocument, error) {
	if cmd.DocumentPath == "" || cmd.DocumentType == "" {
		return nil, domain.ErrMissingDocument
	}
	if !domain.ValidType(cmd.DocumentType) {
		return nil, domain.ErrInvalidDocumentType
	}

	var doc *domain.KycDocument
	err := s.docs.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.docs.GetByUserAndType(txCtx, cmd.UserID, cmd.DocumentType)
		if err != nil {
			return err
		}

		if existing != nil {
			if err := existing.Replace(txCtx, cmd.DocumentPath); err != nil {
				return err
			}
			doc = existing
		} else {
			doc = domain.NewKycDocument(cmd.UserID, cmd.DocumentType, cmd.DocumentPath)
		}
		return s.docs.Save(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Documents 客户自己的全部证件
func (s *KycService) Documents(ctx context.Context, userID uint) ([]*domain.KycDocument, error) {
	return s.docs.ListByUser(ctx, userID)
}

// ListForReview 管理端分页列出证件，可按状态过滤
func (s *KycService) ListForReview(ctx context.Context, status review.Status, limit, offset int) ([]*domain.KycDocument, int64, error) {
	return s.docs.List(ctx, status, limit, offset)
}

// Approve 审核通过证件
func (s *KycService) Approve(ctx context.Context, id uint) (*domain.KycDocument, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}

	if err := doc.Approve(ctx); err != nil {
		return nil, err
	}
	if err := s.docs.CompleteReview(ctx, doc); err != nil {
		return nil, err
	}

	s.notify(ctx, notifdomain.EventKycApproved, doc, "")
	return doc, nil
}

// Reject 审核拒绝证件
func (s *KycService) Reject(ctx context.Context, id uint, note string) (*domain.KycDocument, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}

	if err := doc.Reject(ctx, note); err != nil {
		return nil, err
	}
	if err := s.docs.CompleteReview(ctx, doc); err != nil {
		return nil, err
	}

	s.notify(ctx, notifdomain.EventKycRejected, doc, doc.AdminNote)
	return doc, nil
}

// HasApprovedIdentity 是否存在已通过的身份证件（身份证或驾照）
func (s *KycService) HasApprovedIdentity(ctx context.Context, userID uint) (bool, error) {
	count, err := s.docs.CountApproved(ctx, userID, []domain.DocumentType{domain.DocIDCard, domain.DocDriversLicense})
	return count > 0, err
}

// HasApprovedAddress 是否存在已通过的地址证明
func (s *KycService) HasApprovedAddress(ctx context.Context, userID uint) (bool, error) {
	count, err := s.docs.CountApproved(ctx, userID, []domain.DocumentType{domain.DocUtilityBill})
	return count > 0, err
}

func (s *KycService) notify(ctx context.Context, event notifdomain.EventType, doc *domain.KycDocument, note string) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.GetByID(ctx, doc.UserID)
	if err != nil || user == nil {
		logging.Error(ctx, "Failed to resolve notification recipient", "user_id", doc.UserID, "event", string(event), "error", err)
		return
	}
	params := map[string]any{
		"FullName":     user.FullName,
		"DocumentType": string(doc.DocumentType),
	}
	if note != "" {
		params["Note"] = note
	}
	s.notifier.Dispatch(ctx, event, doc.UserID, user.Email, params)
}
