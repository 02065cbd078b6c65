package application

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wyfcoding/tradersroom/internal/auth/domain"
	"github.com/wyfcoding/tradersroom/pkg/middleware"
)

// TokenIssuer 签发访问令牌
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer 创建令牌签发器
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue 为账户签发 JWT，返回令牌和过期时间戳
func (t *TokenIssuer) Issue(user *domain.User) (string, int64, error) {
	expiresAt := time.Now().Add(t.ttl)
	claims := &middleware.Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt.Unix(), nil
}
