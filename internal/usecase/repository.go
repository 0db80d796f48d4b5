package usecase

import (
	"context"
	"time"

	"github.com/yamao-tech/catalog-backend/internal/domain"
)

type ProductRepository interface {
	// List возвращает страницу товаров по скомпилированному фильтру.
	List(ctx context.Context, filter *ProductFilter) ([]ProductListItem, error)
	// Count возвращает число всех товаров, подходящих под фильтр,
	// без учета limit/offset.
	Count(ctx context.Context, filter *ProductFilter) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	// DetachCategory снимает категорию со всех товаров, которые на нее
	// ссылаются, и возвращает число обновленных строк.
	DetachCategory(ctx context.Context, categoryID int64) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type CategoryRepository interface {
	// List возвращает категории в алфавитном порядке без учета регистра.
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Rename(ctx context.Context, id int64, name string) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type AdminRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}

type ImageRepository interface {
	Upload(ctx context.Context, image *domain.Image) (string, error)
	Delete(ctx context.Context, key string) error
}

// TokenRepository — список отозванных токенов администратора.
type TokenRepository interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// SettingsRepository — плоское файловое хранилище баннеров и контактов.
type SettingsRepository interface {
	GetBanners(ctx context.Context) (*domain.Banners, error)
	SaveBanners(ctx context.Context, banners *domain.Banners) error
	GetContactInfo(ctx context.Context) (*domain.ContactInfo, error)
	SaveContactInfo(ctx context.Context, info *domain.ContactInfo) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64) error
}
