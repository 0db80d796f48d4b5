package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
	trm "github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
)

// AdminUseCase реализует административные мутации каталога.
// Каждая мутация пишет строку и outbox-событие в одной транзакции.
type AdminUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	outboxRepo   OutboxRepository
	imagesInfra  ImagesInfra
	trManager    trm.Manager
	logger       logger.Logger
}

func NewAdminUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	imagesInfra ImagesInfra,
	trManager trm.Manager,
	logger logger.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		imagesInfra:  imagesInfra,
		trManager:    trManager,
		logger:       logger,
	}
}

// CreateProduct создает товар. Изображение сначала загружается в S3, затем
// строка и outbox-событие пишутся в одной транзакции; при откате загруженный
// объект зачищается компенсацией.
func (a *AdminUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error) {
	const op = "AdminUseCase.CreateProduct"

	if err := a.validateProduct(req.Name, req.Price, req.DiscountPrice, req.Weight); err != nil {
		return nil, e.Wrap(op, err)
	}

	imageKey, err := a.uploadIfPresent(ctx, req.Name, req.Image)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var created *domain.Product
	err = a.trManager.Do(ctx, func(ctx context.Context) error {
		var trErr error
		created, trErr = a.productRepo.Create(ctx, domain.NewProduct(
			req.Name, req.Price, req.DiscountPrice, req.Weight, imageKey, req.CategoryID,
		))
		if trErr != nil {
			return trErr
		}

		return a.emitEvent(ctx, ProductCreated, created.ID)
	})
	if err != nil {
		if imageKey != nil {
			a.imagesInfra.CleanupImages([]string{*imageKey})
		}
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateProduct обновляет товар. Новое изображение загружается до транзакции,
// старое удаляется только после успешного коммита: при частичном сбое в
// хранилище не остается строки, ссылающейся на уже удаленный объект.
func (a *AdminUseCase) UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error) {
	const op = "AdminUseCase.UpdateProduct"

	if err := a.validateProduct(req.Name, req.Price, req.DiscountPrice, req.Weight); err != nil {
		return nil, e.Wrap(op, err)
	}

	existing, err := a.productRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	newImageKey, err := a.uploadIfPresent(ctx, req.Name, req.Image)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	imageKey := existing.Image
	if newImageKey != nil {
		imageKey = newImageKey
	}

	var updated *domain.Product
	err = a.trManager.Do(ctx, func(ctx context.Context) error {
		var trErr error
		updated, trErr = a.productRepo.Update(ctx, &domain.Product{
			ID:            req.ID,
			Name:          req.Name,
			Price:         req.Price,
			DiscountPrice: req.DiscountPrice,
			Weight:        req.Weight,
			Image:         imageKey,
			CategoryID:    req.CategoryID,
		})
		if trErr != nil {
			return trErr
		}

		return a.emitEvent(ctx, ProductUpdated, updated.ID)
	})
	if err != nil {
		if newImageKey != nil {
			a.imagesInfra.CleanupImages([]string{*newImageKey})
		}
		return nil, e.Wrap(op, err)
	}

	if newImageKey != nil && existing.Image != nil && *existing.Image != *newImageKey {
		a.imagesInfra.CleanupImages([]string{*existing.Image})
	}

	return updated, nil
}

// DeleteProduct удаляет товар; его изображение зачищается после коммита.
func (a *AdminUseCase) DeleteProduct(ctx context.Context, id int64) error {
	const op = "AdminUseCase.DeleteProduct"

	existing, err := a.productRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = a.trManager.Do(ctx, func(ctx context.Context) error {
		if trErr := a.productRepo.Delete(ctx, id); trErr != nil {
			return trErr
		}

		return a.emitEvent(ctx, ProductDeleted, id)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	if existing.Image != nil {
		a.imagesInfra.CleanupImages([]string{*existing.Image})
	}

	return nil
}

func (a *AdminUseCase) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	const op = "AdminUseCase.CreateCategory"

	if strings.TrimSpace(name) == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	var created *domain.Category
	err := a.trManager.Do(ctx, func(ctx context.Context) error {
		var trErr error
		created, trErr = a.categoryRepo.Create(ctx, domain.NewCategory(name))
		if trErr != nil {
			return trErr
		}

		return a.emitEvent(ctx, CategoryCreated, created.ID)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

func (a *AdminUseCase) RenameCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	const op = "AdminUseCase.RenameCategory"

	if strings.TrimSpace(name) == "" {
		return nil, e.Wrap(op, e.ErrCategoryNameRequired)
	}

	var renamed *domain.Category
	err := a.trManager.Do(ctx, func(ctx context.Context) error {
		var trErr error
		renamed, trErr = a.categoryRepo.Rename(ctx, id, name)
		if trErr != nil {
			return trErr
		}

		return a.emitEvent(ctx, CategoryRenamed, id)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return renamed, nil
}

// DeleteCategory атомарно отвязывает все товары категории и удаляет саму
// категорию: либо применяются оба изменения, либо ни одного. Товары никогда
// не удаляются каскадно.
func (a *AdminUseCase) DeleteCategory(ctx context.Context, id int64) (*DeleteCategoryRes, error) {
	const op = "AdminUseCase.DeleteCategory"

	var detached int64
	err := a.trManager.Do(ctx, func(ctx context.Context) error {
		var trErr error
		detached, trErr = a.productRepo.DetachCategory(ctx, id)
		if trErr != nil {
			return trErr
		}

		if trErr = a.categoryRepo.Delete(ctx, id); trErr != nil {
			return trErr
		}

		return a.emitEvent(ctx, CategoryDeleted, id)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &DeleteCategoryRes{UpdatedProductsCount: detached}, nil
}

// emitEvent пишет outbox-событие в текущей транзакции.
func (a *AdminUseCase) emitEvent(ctx context.Context, eventType OutboxEventType, entityID int64) error {
	eventID := uuid.NewString()
	payload, err := json.Marshal(ChangeEventPayload{
		EventID:    eventID,
		EventType:  string(eventType),
		EntityID:   entityID,
		OccurredAt: time.Now().UnixNano(),
	})
	if err != nil {
		return err
	}

	_, err = a.outboxRepo.Create(ctx, NewOutboxEvent(eventID, eventType, entityID, payload))
	return err
}

func (a *AdminUseCase) uploadIfPresent(ctx context.Context, productName string, image *ImageUpload) (*string, error) {
	if image == nil {
		return nil, nil
	}

	key, err := a.imagesInfra.UploadImage(ctx, NewUploadImageReq(productName, *image))
	if err != nil {
		return nil, err
	}

	return &key, nil
}

// validateProduct проверяет корректность входных данных товара.
func (a *AdminUseCase) validateProduct(name string, price int64, discountPrice *int64, weight string) error {
	if strings.TrimSpace(name) == "" {
		return e.ErrProductNameRequired
	}

	if price <= 0 {
		return e.ErrInvalidPrice
	}

	if strings.TrimSpace(weight) == "" {
		return e.ErrWeightRequired
	}

	if discountPrice != nil {
		if *discountPrice <= 0 {
			return e.ErrInvalidPrice
		}
		// Скидка выше базовой цены не запрещается, но подозрительна
		if *discountPrice >= price {
			a.logger.Warnf("discount price %s is not below price %s",
				strconv.FormatInt(*discountPrice, 10), strconv.FormatInt(price, 10))
		}
	}

	return nil
}
