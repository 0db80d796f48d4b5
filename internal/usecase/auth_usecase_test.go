package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainHasher — тестовый "хэш": пароль хранится как есть.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return password, nil }
func (plainHasher) Verify(password, hash string) bool    { return password == hash }

// stubTokenManager выпускает токены вида "token-<id>".
type stubTokenManager struct {
	verifyErr error
}

func (s *stubTokenManager) Generate(admin *domain.Admin) (string, error) {
	return "token-" + strconv.FormatInt(admin.ID, 10), nil
}

func (s *stubTokenManager) Verify(token string) (int64, time.Duration, error) {
	if s.verifyErr != nil {
		return 0, 0, s.verifyErr
	}
	id, err := strconv.ParseInt(token[len("token-"):], 10, 64)
	if err != nil {
		return 0, 0, e.ErrUnauthorized
	}
	return id, time.Hour, nil
}

func newAuthFixture(t *testing.T) (*AuthUseCase, *memAdminRepo, *memTokenRepo) {
	t.Helper()
	admins := newMemAdminRepo()
	tokens := newMemTokenRepo()
	uc := NewAuthUC(admins, tokens, &stubTokenManager{}, plainHasher{}, nopLogger{})
	return uc, admins, tokens
}

func TestLogin(t *testing.T) {
	uc, admins, _ := newAuthFixture(t)
	_, err := admins.Create(context.Background(), domain.NewAdmin("admin", "secret"))
	require.NoError(t, err)

	token, err := uc.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uc, admins, _ := newAuthFixture(t)
	_, err := admins.Create(context.Background(), domain.NewAdmin("admin", "secret"))
	require.NoError(t, err)

	// Неизвестный логин и неверный пароль дают одну и ту же ошибку
	_, err = uc.Login(context.Background(), "nobody", "secret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrInvalidCredentials))

	_, err = uc.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrInvalidCredentials))
}

func TestLogoutRevokesToken(t *testing.T) {
	uc, admins, tokens := newAuthFixture(t)
	_, err := admins.Create(context.Background(), domain.NewAdmin("admin", "secret"))
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), "token-1"))
	assert.True(t, tokens.revoked["token-1"])

	// Отозванный токен больше не аутентифицирует
	_, err = uc.Authenticate(context.Background(), "token-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrTokenRevoked))
}

func TestAuthenticate(t *testing.T) {
	uc, admins, _ := newAuthFixture(t)
	_, err := admins.Create(context.Background(), domain.NewAdmin("admin", "secret"))
	require.NoError(t, err)

	admin, err := uc.Authenticate(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
}

func TestAuthenticateRejectsWhenRevocationStoreDown(t *testing.T) {
	uc, admins, tokens := newAuthFixture(t)
	_, err := admins.Create(context.Background(), domain.NewAdmin("admin", "secret"))
	require.NoError(t, err)

	// Недоступность списка отзыва не должна пропускать токены
	tokens.checkErr = errors.New("redis down")
	_, err = uc.Authenticate(context.Background(), "token-1")
	require.Error(t, err)
}

func TestAuthenticateUnknownAdmin(t *testing.T) {
	uc, _, _ := newAuthFixture(t)

	_, err := uc.Authenticate(context.Background(), "token-9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrUnauthorized))
}
