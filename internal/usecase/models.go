package usecase

import (
	"time"

	"github.com/yamao-tech/catalog-backend/internal/domain"
)

// CATALOG

// ProductListItem — элемент страницы выдачи: товар плюс название его
// категории, если категория есть.
type ProductListItem struct {
	Product      domain.Product
	CategoryName *string
}

// ListProductsRes — страница товаров и общее число совпадений фильтра
// (без учета limit/offset).
type ListProductsRes struct {
	Total int64
	Items []ProductListItem
}

// CategoryOption — категория в каталожном списке. ID — строка, потому что
// список открывается синтетической записью "all", которая не хранится в БД.
type CategoryOption struct {
	ID   string
	Name string
}

// ADMIN

// ImageUpload представляет изображение, загруженное через multipart/form-data.
type ImageUpload struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// CreateProductReq — запрос на создание товара. Цены в копейках.
type CreateProductReq struct {
	Name          string
	Price         int64
	DiscountPrice *int64
	Weight        string
	CategoryID    *int64
	Image         *ImageUpload
}

// UpdateProductReq — запрос на обновление товара.
// Image == nil означает «оставить текущее изображение».
type UpdateProductReq struct {
	ID            int64
	Name          string
	Price         int64
	DiscountPrice *int64
	Weight        string
	CategoryID    *int64
	Image         *ImageUpload
}

// DeleteCategoryRes — результат удаления категории: сколько товаров было
// отвязано в той же транзакции.
type DeleteCategoryRes struct {
	UpdatedProductsCount int64
}

// INFRASTRUCTURE

// UploadImageReq — запрос на загрузку изображения товара в S3.
type UploadImageReq struct {
	ProductName string
	Image       ImageUpload
}

// WriteRawMessageReq — запрос на публикацию готового payload в брокер.
type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
	Failed     OutboxStatus = "failed"
)

type OutboxEventType string

const (
	ProductCreated  OutboxEventType = "product.created"
	ProductUpdated  OutboxEventType = "product.updated"
	ProductDeleted  OutboxEventType = "product.deleted"
	CategoryCreated OutboxEventType = "category.created"
	CategoryRenamed OutboxEventType = "category.renamed"
	CategoryDeleted OutboxEventType = "category.deleted"
)

// OutboxEvent — событие изменения каталога, записанное в той же транзакции,
// что и само изменение, и публикуемое в Kafka воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	EntityID    int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// ChangeEventPayload — JSON-тело события изменения каталога.
type ChangeEventPayload struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	EntityID   int64  `json:"entity_id"`
	OccurredAt int64  `json:"occurred_at"` // unix nano
}

// MAPPERS

func NewOutboxEvent(eventID string, eventType OutboxEventType, entityID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		EntityID:  entityID,
		Payload:   payload,
		Status:    Pending,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}

func NewImageUpload(data []byte, mimeType string, size int64, name string) *ImageUpload {
	return &ImageUpload{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImageReq(productName string, image ImageUpload) *UploadImageReq {
	return &UploadImageReq{
		ProductName: productName,
		Image:       image,
	}
}

func NewListProductsRes(total int64, items []ProductListItem) *ListProductsRes {
	return &ListProductsRes{
		Total: total,
		Items: items,
	}
}
