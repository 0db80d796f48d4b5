package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
)

type ctxKey int

const adminCtxKey ctxKey = iota

// bearerToken извлекает токен из заголовка Authorization.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", e.ErrUnauthorized
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", e.ErrUnauthorized
	}

	return parts[1], nil
}

// AuthMiddleware пропускает запрос дальше только с действительным
// неотозванным токеном администратора.
func AuthMiddleware(authUsecase usecase.AuthUC, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				WriteError(w, err)
				return
			}

			admin, err := authUsecase.Authenticate(r.Context(), token)
			if err != nil {
				logger.Debugf("authentication rejected: %s", err.Error())
				WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), adminCtxKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext возвращает администратора, положенного AuthMiddleware.
func AdminFromContext(ctx context.Context) (*domain.Admin, bool) {
	admin, ok := ctx.Value(adminCtxKey).(*domain.Admin)
	return admin, ok
}
