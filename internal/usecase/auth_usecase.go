package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
)

// AuthUseCase — шлюз аутентификации администратора: выпускает bearer-токены,
// проверяет их и ведет список отозванных токенов. Никакой каталожной логики
// здесь нет.
type AuthUseCase struct {
	adminRepo AdminRepository
	tokenRepo TokenRepository
	tokens    TokenManager
	hasher    PasswordHasher
	logger    logger.Logger
}

func NewAuthUC(
	adminRepo AdminRepository,
	tokenRepo TokenRepository,
	tokens TokenManager,
	hasher PasswordHasher,
	logger logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		adminRepo: adminRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
		hasher:    hasher,
		logger:    logger,
	}
}

// Login проверяет логин и пароль и возвращает подписанный токен.
// Несуществующий пользователь и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	const op = "AuthUseCase.Login"

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", e.Wrap(op, e.ErrInvalidCredentials)
	}

	admin, err := a.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return "", e.Wrap(op, e.ErrInvalidCredentials)
		}
		return "", e.Wrap(op, err)
	}

	if !a.hasher.Verify(password, admin.PasswordHash) {
		return "", e.Wrap(op, e.ErrInvalidCredentials)
	}

	token, err := a.tokens.Generate(admin)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return token, nil
}

// Logout отзывает токен до конца его срока жизни.
func (a *AuthUseCase) Logout(ctx context.Context, token string) error {
	const op = "AuthUseCase.Logout"

	_, ttl, err := a.tokens.Verify(token)
	if err != nil {
		return e.Wrap(op, e.ErrUnauthorized)
	}

	if err := a.tokenRepo.Revoke(ctx, token, ttl); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Authenticate резолвит bearer-токен в администратора либо отклоняет запрос.
func (a *AuthUseCase) Authenticate(ctx context.Context, token string) (*domain.Admin, error) {
	const op = "AuthUseCase.Authenticate"

	adminID, _, err := a.tokens.Verify(token)
	if err != nil {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	revoked, err := a.tokenRepo.IsRevoked(ctx, token)
	if err != nil {
		// Недоступность списка отзыва не должна пускать отозванные токены
		return nil, e.Wrap(op, err)
	}
	if revoked {
		return nil, e.Wrap(op, e.ErrTokenRevoked)
	}

	admin, err := a.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, e.ErrUnauthorized)
		}
		return nil, e.Wrap(op, err)
	}

	return admin, nil
}
