// Package domain 账户与凭证的领域模型
package domain

import (
	"errors"
	"time"
)

// UserRole 账户角色
type UserRole string

const (
	RoleClient UserRole = "client"
	RoleAdmin  UserRole = "admin"
)

var (
	// ErrNotFound 账户不存在
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken 邮箱已被注册
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailNotVerified 邮箱尚未验证，拒绝登录
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrInvalidToken 验证或重置令牌无效/过期
	ErrInvalidToken = errors.New("invalid or expired token")
)

// User 账户实体，平台内所有业务对象都挂在账户之下
type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	FullName      string    `json:"full_name" gorm:"column:full_name;type:varchar(100);not null"`
	Email         string    `json:"email" gorm:"column:email;type:varchar(100);uniqueIndex;not null"`
	PhoneNumber   string    `json:"phone_number" gorm:"column:phone_number;type:varchar(20)"`
	CountryCode   string    `json:"country_code" gorm:"column:country_code;type:varchar(10)"`
	PasswordHash  string    `json:"-" gorm:"column:password_hash;type:varchar(255);not null"`
	Role          UserRole  `json:"role" gorm:"column:role;type:varchar(10);not null;default:'client'"`
	PromoCode     string    `json:"promo_code,omitempty" gorm:"column:promo_code;type:varchar(50)"`
	EmailVerified bool      `json:"email_verified" gorm:"column:email_verified;not null;default:false"`
	// VerificationToken 注册时生成，验证通过后清空
	VerificationToken string `json:"-" gorm:"column:verification_token;type:varchar(64)"`
	// ResetToken 密码重置令牌，一小时有效
	ResetToken       string     `json:"-" gorm:"column:reset_token;type:varchar(64)"`
	ResetTokenExpiry *time.Time `json:"-" gorm:"column:reset_token_expiry"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// NewUser 创建 client 角色的新账户
func NewUser(fullName, email, passwordHash string) *User {
	return &User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleClient,
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
