// Package domain KYC 证件的领域模型。
// 每个账户每种证件类型只保留一份最新文档，重传会覆盖旧文件并回到 pending。
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/wyfcoding/tradersroom/internal/review"
)

// DocumentType 证件类型
type DocumentType string

const (
	DocIDCard         DocumentType = "id_card"
	DocDriversLicense DocumentType = "drivers_license"
	DocUtilityBill    DocumentType = "utility_bill"
)

var (
	// ErrNotFound 证件不存在
	ErrNotFound = errors.New("kyc document not found")
	// ErrMissingDocument 证件类型或文件缺失
	ErrMissingDocument = errors.New("document type and file are required")
	// ErrInvalidDocumentType 证件类型不在允许范围内
	ErrInvalidDocumentType = errors.New("invalid document type")
)

// KycDocument KYC 证件
type KycDocument struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	UserID       uint          `json:"user_id" gorm:"column:user_id;index:idx_kyc_user_type;not null"`
	DocumentType DocumentType  `json:"document_type" gorm:"column:document_type;type:varchar(20);index:idx_kyc_user_type;not null"`
	DocumentPath string        `json:"document_path" gorm:"column:document_path;type:varchar(255);not null"`
	Status       review.Status `json:"status" gorm:"column:status;type:varchar(10);index;not null;default:'pending'"`
	AdminNote    string        `json:"admin_note,omitempty" gorm:"column:admin_note;type:text"`
	SubmittedAt  time.Time     `json:"submitted_at" gorm:"column:submitted_at;autoCreateTime"`
	VerifiedAt   *time.Time    `json:"verified_at,omitempty" gorm:"column:verified_at"`
}

func (KycDocument) TableName() string { return "kyc_documents" }

// ValidType 证件类型是否合法
func ValidType(t DocumentType) bool {
	switch t {
	case DocIDCard, DocDriversLicense, DocUtilityBill:
		return true
	}
	return false
}

// NewKycDocument 创建 pending 状态的证件记录
func NewKycDocument(userID uint, docType DocumentType, path string) *KycDocument {
	return &KycDocument{
		UserID:       userID,
		DocumentType: docType,
		DocumentPath: path,
		Status:       review.StatusPending,
	}
}

// Replace 覆盖文件并把状态重置回 pending，清掉上一轮的审核痕迹
func (d *KycDocument) Replace(ctx context.Context, path string) error {
	if err := review.NewMachine(d.Status).Resubmit(ctx); err != nil {
		return err
	}
	d.DocumentPath = path
	d.Status = review.StatusPending
	d.AdminNote = ""
	d.VerifiedAt = nil
	d.SubmittedAt = time.Now()
	return nil
}

// Approve 审核通过并记录核验时间
func (d *KycDocument) Approve(ctx context.Context) error {
	if err := review.NewMachine(d.Status).Approve(ctx); err != nil {
		return err
	}
	now := time.Now()
	d.Status = review.StatusApproved
	d.VerifiedAt = &now
	return nil
}

// Reject 审核拒绝并记录备注与核验时间
func (d *KycDocument) Reject(ctx context.Context, note string) error {
	if err := review.NewMachine(d.Status).Reject(ctx); err != nil {
		return err
	}
	if note == "" {
		note = review.DefaultRejectNote
	}
	now := time.Now()
	d.Status = review.StatusRejected
	d.AdminNote = note
	d.VerifiedAt = &now
	return nil
}
