package application

import (
	"context"
	"errors"

	"github.com/wyfcoding/tradersroom/internal/funding/domain"
)

// ErrMissingMethodFields 渠道类型或名称缺失
var ErrMissingMethodFields = errors.New("type and name are required")

// CreateDepositMethodCommand 管理端创建入金渠道
type CreateDepositMethodCommand struct {
	Type   domain.MethodType
	Name   string
	Status domain.MethodStatus

	// 银行明细
	BeneficiaryName string
	BankName        string
	Branch          string
	AccountNumber   string
	IfscCode        string

	// 加密货币明细
	Network string
	Address string

	// other 类型明细
	Notes string

	// 上传文件路径
	QrCodePath string
	LogoPath   string
}

// UpdateDepositMethodCommand 管理端更新入金渠道，零值字段保持不变
type UpdateDepositMethodCommand = CreateDepositMethodCommand

// MethodCommandService 入金渠道管理命令服务
type MethodCommandService struct {
	methods domain.DepositMethodRepository
}

// NewMethodCommandService 创建入金渠道命令服务实例
func NewMethodCommandService(methods domain.DepositMethodRepository) *MethodCommandService {
	return &MethodCommandService{methods: methods}
}

// CreateDepositMethod 创建渠道及其类型明细，同一事务内完成
func (s *MethodCommandService) CreateDepositMethod(ctx context.Context, cmd CreateDepositMethodCommand) (*domain.DepositMethod, error) {
	if cmd.Type == "" || cmd.Name == "" {
		return nil, ErrMissingMethodFields
	}

	method := &domain.DepositMethod{
		Type:   cmd.Type,
		Name:   cmd.Name,
		Status: cmd.Status,
	}
	if method.Status == "" {
		method.Status = domain.MethodActive
	}

	switch cmd.Type {
	case domain.MethodBank:
		method.BankDetail = &domain.DepositMethodBankDetail{
			BeneficiaryName: cmd.BeneficiaryName,
			BankName:        cmd.BankName,
			Branch:          cmd.Branch,
			AccountNumber:   cmd.AccountNumber,
			IfscCode:        cmd.IfscCode,
		}
	case domain.MethodCrypto:
		method.CryptoDetail = &domain.DepositMethodCryptoDetail{
			Network:    cmd.Network,
			Address:    cmd.Address,
			QrCodePath: cmd.QrCodePath,
			LogoPath:   cmd.LogoPath,
		}
	case domain.MethodOther:
		method.OtherDetail = &domain.DepositMethodOtherDetail{
			QrCodePath: cmd.QrCodePath,
			LogoPath:   cmd.LogoPath,
			Notes:      cmd.Notes,
		}
	}

	err := s.methods.WithTx(ctx, func(txCtx context.Context) error {
		return s.methods.Save(txCtx, method)
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

// UpdateDepositMethod 更新渠道及其明细
func (s *MethodCommandService) UpdateDepositMethod(ctx context.Context, id uint, cmd UpdateDepositMethodCommand) (*domain.DepositMethod, error) {
	method, err := s.methods.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.ErrNotFound
	}

	if cmd.Name != "" {
		method.Name = cmd.Name
	}
	if cmd.Status != "" {
		method.Status = cmd.Status
	}

	switch method.Type {
	case domain.MethodBank:
		if method.BankDetail == nil {
			method.BankDetail = &domain.DepositMethodBankDetail{MethodID: method.ID}
		}
		d := method.BankDetail
		if cmd.BeneficiaryName != "" {
			d.BeneficiaryName = cmd.BeneficiaryName
		}
		if cmd.BankName != "" {
			d.BankName = cmd.BankName
		}
		if cmd.Branch != "" {
			d.Branch = cmd.Branch
		}
		if cmd.AccountNumber != "" {
			d.AccountNumber = cmd.AccountNumber
		}
		if cmd.IfscCode != "" {
			d.IfscCode = cmd.IfscCode
		}
	case domain.MethodCrypto:
		if method.CryptoDetail == nil {
			method.CryptoDetail = &domain.DepositMethodCryptoDetail{MethodID: method.ID}
		}
		d := method.CryptoDetail
		if cmd.Network != "" {
			d.Network = cmd.Network
		}
		if cmd.Address != "" {
			d.Address = cmd.Address
		}
		if cmd.QrCodePath != "" {
			d.QrCodePath = cmd.QrCodePath
		}
		if cmd.LogoPath != "" {
			d.LogoPath = cmd.LogoPath
		}
	case domain.MethodOther:
		if method.OtherDetail == nil {
			method.OtherDetail = &domain.DepositMethodOtherDetail{MethodID: method.ID}
		}
		d := method.OtherDetail
		if cmd.Notes != "" {
			d.Notes = cmd.Notes
		}
		if cmd.QrCodePath != "" {
			d.QrCodePath = cmd.QrCodePath
		}
		if cmd.LogoPath != "" {
			d.LogoPath = cmd.LogoPath
		}
	}

	err = s.methods.WithTx(ctx, func(txCtx context.Context) error {
		return s.methods.Save(txCtx, method)
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

// ToggleDepositMethodStatus 切换渠道状态，仅影响客户端可见性
func (s *MethodCommandService) ToggleDepositMethodStatus(ctx context.Context, id uint, status domain.MethodStatus) (*domain.DepositMethod, error) {
	method, err := s.methods.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.ErrNotFound
	}

	method.Status = status
	if err := s.methods.Save(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}
