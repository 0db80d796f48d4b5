package usecase

import (
	"context"
	"time"

	"github.com/yamao-tech/catalog-backend/internal/domain"
)

// ImagesInfra управляет жизненным циклом изображений товаров в S3.
type ImagesInfra interface {
	UploadImage(ctx context.Context, req *UploadImageReq) (string, error)
	// CleanupImages запускает фоновое удаление объектов по ключам.
	CleanupImages(keys []string)
}

// MessageProducer публикует события изменения каталога в брокер.
type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// TokenManager выпускает и проверяет bearer-токены администратора.
type TokenManager interface {
	Generate(admin *domain.Admin) (string, error)
	// Verify возвращает id администратора из валидного токена
	// и остаток времени жизни токена.
	Verify(token string) (int64, time.Duration, error)
}

// PasswordHasher хэширует и проверяет пароли администратора.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
