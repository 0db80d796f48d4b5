package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yamao-tech/catalog-backend/internal/cfg"
	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/internal/infrastructure"
	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/jitter"
	"github.com/yamao-tech/catalog-backend/pkg/logger"

	"github.com/google/uuid"
)

// MinioInfrastructure управляет загрузкой и очисткой изображений товаров.
// Очистка выполняется в фоне с повторами; WaitForCleanup дает graceful
// shutdown дождаться компенсаций.
type MinioInfrastructure struct {
	minioRepo   usecase.ImageRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMinioInfrastructure(minioRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		minioRepo:   minioRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
	}
}

// UploadImage загружает изображение товара и возвращает ключ объекта.
func (m *MinioInfrastructure) UploadImage(ctx context.Context, req *usecase.UploadImageReq) (string, error) {
	const op = "MinioInfrastructure.UploadImage"

	imageID := uuid.NewString()
	ext, err := infrastructure.GetExtensionFromMIME(req.Image.MimeType)
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("invalid mime type %s for %s: %w", req.Image.MimeType, req.Image.Name, err))
	}

	objKey := fmt.Sprintf("%s/%s.%s", req.ProductName, imageID, ext)
	image := domain.NewImage(imageID, m.cfg.BucketName, objKey, req.Image.Data, &req.Image.Size, &req.Image.MimeType)

	key, err := m.minioRepo.Upload(ctx, image)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return key, nil
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// WaitForCleanup блокируется, пока не завершатся фоновые компенсации
// или не истечет контекст.
func (m *MinioInfrastructure) WaitForCleanup(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной
// задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const (
		op          = "MinioInfrastructure.cleanupUploadedKeys"
		maxAttempts = 3
	)

	m.logger.Infof("%s: cleaning up %d object(s)", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			if err := m.minioRepo.Delete(ctx, key); err == nil {
				break
			}

			select {
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			case <-time.After(jitter.ExponentialBackoff(time.Second, 10*time.Second, attempt, jitter.DefaultJitter)):
			}
		}
	}
}
