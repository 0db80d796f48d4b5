package auth

import (
	"strconv"
	"time"

	"github.com/yamao-tech/catalog-backend/internal/cfg"
	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/golang-jwt/jwt/v5"
)

// JWTManager выпускает и проверяет подписанные HS256-токены администратора.
type JWTManager struct {
	cfg *cfg.AuthCfg
}

func NewJWTManager(cfg *cfg.AuthCfg) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// Generate возвращает подписанный токен с id администратора в subject.
func (m *JWTManager) Generate(admin *domain.Admin) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(admin.ID, 10),
		Issuer:    m.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.Secret))
}

// Verify проверяет подпись и срок жизни токена, возвращая id администратора
// и остаток времени жизни.
func (m *JWTManager) Verify(tokenStr string) (int64, time.Duration, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, e.ErrUnauthorized
		}
		return []byte(m.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return 0, 0, e.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ExpiresAt == nil {
		return 0, 0, e.ErrUnauthorized
	}

	adminID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, 0, e.ErrUnauthorized
	}

	return adminID, time.Until(claims.ExpiresAt.Time), nil
}
