// Package domain 出入金的领域模型：入金渠道目录、出金账户与两类申请单。
package domain

import (
	"time"
)

// MethodType 渠道类型
type MethodType string

const (
	MethodBank   MethodType = "bank"
	MethodCrypto MethodType = "crypto"
	MethodOther  MethodType = "other"
)

// MethodStatus 渠道状态，inactive 仅影响客户端可见性，不影响历史申请单
type MethodStatus string

const (
	MethodActive   MethodStatus = "active"
	MethodInactive MethodStatus = "inactive"
)

// DepositMethod 管理端维护的入金渠道，全局目录数据
type DepositMethod struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Type      MethodType   `json:"type" gorm:"column:type;type:varchar(10);not null"`
	Name      string       `json:"name" gorm:"column:name;type:varchar(100);not null"`
	Status    MethodStatus `json:"status" gorm:"column:status;type:varchar(10);not null;default:'active'"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// 明细按 Type 恰好挂一条
	BankDetail   *DepositMethodBankDetail   `json:"bank_detail,omitempty" gorm:"foreignKey:MethodID"`
	CryptoDetail *DepositMethodCryptoDetail `json:"crypto_detail,omitempty" gorm:"foreignKey:MethodID"`
	OtherDetail  *DepositMethodOtherDetail  `json:"other_detail,omitempty" gorm:"foreignKey:MethodID"`
}

func (DepositMethod) TableName() string { return "deposit_methods" }

// IsActive 渠道是否可供客户端提交
func (m *DepositMethod) IsActive() bool { return m.Status == MethodActive }

// DepositMethodBankDetail 银行渠道明细
type DepositMethodBankDetail struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	MethodID        uint   `json:"method_id" gorm:"column:method_id;index;not null"`
	BeneficiaryName string `json:"beneficiary_name" gorm:"column:beneficiary_name;type:varchar(100)"`
	BankName        string `json:"bank_name" gorm:"column:bank_name;type:varchar(100)"`
	Branch          string `json:"branch" gorm:"column:branch;type:varchar(100)"`
	AccountNumber   string `json:"account_number" gorm:"column:account_number;type:varchar(100)"`
	IfscCode        string `json:"ifsc_code" gorm:"column:ifsc_code;type:varchar(100)"`
}

func (DepositMethodBankDetail) TableName() string { return "deposit_method_bank_details" }

// DepositMethodCryptoDetail 加密货币渠道明细
type DepositMethodCryptoDetail struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	MethodID   uint   `json:"method_id" gorm:"column:method_id;index;not null"`
	Network    string `json:"network" gorm:"column:network;type:varchar(50)"`
	Address    string `json:"address" gorm:"column:address;type:varchar(255)"`
	QrCodePath string `json:"qr_code_path" gorm:"column:qr_code_path;type:varchar(255)"`
	LogoPath   string `json:"logo_path" gorm:"column:logo_path;type:varchar(255)"`
}

func (DepositMethodCryptoDetail) TableName() string { return "deposit_method_crypto_details" }

// DepositMethodOtherDetail 其他类型渠道明细
type DepositMethodOtherDetail struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	MethodID   uint   `json:"method_id" gorm:"column:method_id;index;not null"`
	QrCodePath string `json:"qr_code_path" gorm:"column:qr_code_path;type:varchar(255)"`
	LogoPath   string `json:"logo_path" gorm:"column:logo_path;type:varchar(255)"`
	Notes      string `json:"notes" gorm:"column:notes;type:text"`
}

func (DepositMethodOtherDetail) TableName() string { return "deposit_method_other_details" }

// WithdrawalMethod 客户自己维护的出金账户（银行或加密钱包）。
// 申请单提交后引用不回溯失效，后续停用不影响已有申请。
type WithdrawalMethod struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	UserID        uint         `json:"user_id" gorm:"column:user_id;index;not null"`
	Type          MethodType   `json:"type" gorm:"column:type;type:varchar(10);not null"`
	BankName      string       `json:"bank_name,omitempty" gorm:"column:bank_name;type:varchar(100)"`
	Branch        string       `json:"branch,omitempty" gorm:"column:branch;type:varchar(100)"`
	AccountNumber string       `json:"account_number,omitempty" gorm:"column:account_number;type:varchar(100)"`
	AccountName   string       `json:"account_name,omitempty" gorm:"column:account_name;type:varchar(100)"`
	SwiftCode     string       `json:"swift_code,omitempty" gorm:"column:swift_code;type:varchar(100)"`
	Iban          string       `json:"iban,omitempty" gorm:"column:iban;type:varchar(100)"`
	Network       string       `json:"network,omitempty" gorm:"column:network;type:varchar(50)"`
	WalletAddress string       `json:"wallet_address,omitempty" gorm:"column:wallet_address;type:varchar(255)"`
	Status        MethodStatus `json:"status" gorm:"column:status;type:varchar(10);not null;default:'active'"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (WithdrawalMethod) TableName() string { return "withdrawal_methods" }

// IsActive 出金账户是否可用
func (m *WithdrawalMethod) IsActive() bool { return m.Status == MethodActive }
