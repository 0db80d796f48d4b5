package usecase

import (
	"context"

	"github.com/yamao-tech/catalog-backend/internal/domain"
)

type CatalogUC interface {
	ListProducts(ctx context.Context, params ListProductsParams) (*ListProductsRes, error)
	ListCategories(ctx context.Context) ([]CategoryOption, error)
}

type AdminUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req *UpdateProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	RenameCategory(ctx context.Context, id int64, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) (*DeleteCategoryRes, error)
}

type AuthUC interface {
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	// Authenticate проверяет bearer-токен и возвращает администратора
	// или ошибку e.ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (*domain.Admin, error)
}

type SettingsUC interface {
	GetBanners(ctx context.Context) (*domain.Banners, error)
	SaveBanners(ctx context.Context, banners *domain.Banners) error
	GetContactInfo(ctx context.Context) (*domain.ContactInfo, error)
	SaveContactInfo(ctx context.Context, info *domain.ContactInfo) error
}
