package domain

import (
	"context"

	"github.com/wyfcoding/tradersroom/internal/review"
)

// KycDocumentRepository 证件仓储
type KycDocumentRepository interface {
	Save(ctx context.Context, doc *KycDocument) error
	GetByID(ctx context.Context, id uint) (*KycDocument, error)
	// CompleteReview 以数据库中 status 仍为 pending 为条件写入审核结论，
	// 文档已被另一次审核置为终态时返回 review.ErrInvalidState。
	CompleteReview(ctx context.Context, doc *KycDocument) error
	// GetByUserAndType 查询账户某证件类型的当前文档
	GetByUserAndType(ctx context.Context, userID uint, docType DocumentType) (*KycDocument, error)
	ListByUser(ctx context.Context, userID uint) ([]*KycDocument, error)
	// List 管理端分页列出证件，status 为空表示不过滤
	List(ctx context.Context, status review.Status, limit, offset int) ([]*KycDocument, int64, error)
	// CountApproved 统计账户指定类型集合下已通过的证件数
	CountApproved(ctx context.Context, userID uint, types []DocumentType) (int64, error)
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
