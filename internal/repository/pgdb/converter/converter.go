package converter

import (
	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
}

// AdminConverter преобразует сущности Admin между domain и моделью PostgreSQL.
type AdminConverter interface {
	ToEntity(model *AdminModel) *domain.Admin
}

// OutboxEventConverter преобразует события outbox между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(event *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl { return &ProductConverterImpl{} }

func (ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:            entity.ID,
		Name:          entity.Name,
		Price:         entity.Price,
		DiscountPrice: entity.DiscountPrice,
		Weight:        entity.Weight,
		Image:         entity.Image,
		CategoryID:    entity.CategoryID,
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
	}
}

func (ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:            model.ID,
		Name:          model.Name,
		Price:         model.Price,
		DiscountPrice: model.DiscountPrice,
		Weight:        model.Weight,
		Image:         model.Image,
		CategoryID:    model.CategoryID,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

type CategoryConverterImpl struct{}

func NewCategoryConverterImpl() *CategoryConverterImpl { return &CategoryConverterImpl{} }

func (CategoryConverterImpl) ToModel(entity *domain.Category) *CategoryModel {
	return &CategoryModel{
		ID:        entity.ID,
		Name:      entity.Name,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}

func (CategoryConverterImpl) ToEntity(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

type AdminConverterImpl struct{}

func NewAdminConverterImpl() *AdminConverterImpl { return &AdminConverterImpl{} }

func (AdminConverterImpl) ToEntity(model *AdminModel) *domain.Admin {
	return &domain.Admin{
		ID:           model.ID,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl { return &OutboxEventConverterImpl{} }

func (OutboxEventConverterImpl) ToModel(event *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          event.ID,
		EventID:     event.EventID,
		EventType:   string(event.EventType),
		EntityID:    event.EntityID,
		Payload:     event.Payload,
		Status:      string(event.Status),
		CreatedAt:   event.CreatedAt,
		ProcessedAt: event.ProcessedAt,
	}
}

func (OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		EntityID:    model.EntityID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}
