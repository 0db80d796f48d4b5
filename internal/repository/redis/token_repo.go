package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/yamao-tech/catalog-backend/pkg/clients"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// TokenRepo — список отозванных bearer-токенов в Redis.
// Ключ живет ровно столько, сколько оставалось жить токену, после чего
// запись становится ненужной: просроченный токен отклоняет сама подпись.
type TokenRepo struct {
	client *clients.RedisClient
	logger logger.Logger
}

func NewTokenRepo(client *clients.RedisClient, logger logger.Logger) *TokenRepo {
	return &TokenRepo{
		client: client,
		logger: logger,
	}
}

// Revoke помечает токен отозванным до истечения его срока жизни.
func (t *TokenRepo) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // токен уже истек
	}

	key := t.tokenKey(token)
	if err := t.client.Client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// IsRevoked сообщает, отозван ли токен.
func (t *TokenRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := t.client.Client.Get(ctx, t.tokenKey(token)).Result()
	if err != nil {
		if err == r.Nil {
			return false, nil
		}
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return true, nil
}

// tokenKey возвращает Redis-ключ для токена. Хранится хэш, а не сам токен,
// чтобы дамп Redis не содержал действующих учетных данных.
func (t *TokenRepo) tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked_token:" + hex.EncodeToString(sum[:])
}
