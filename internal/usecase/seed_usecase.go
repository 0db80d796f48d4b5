package usecase

import (
	"context"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
)

// SeedUseCase — явный одноразовый шаг начального наполнения.
// Выполняется на старте приложения и идемпотентен: администратор создается
// только если в системе нет ни одного, демо-каталог — только если каталог пуст.
type SeedUseCase struct {
	adminRepo    AdminRepository
	categoryRepo CategoryRepository
	productRepo  ProductRepository
	hasher       PasswordHasher
	logger       logger.Logger
}

func NewSeedUC(
	adminRepo AdminRepository,
	categoryRepo CategoryRepository,
	productRepo ProductRepository,
	hasher PasswordHasher,
	logger logger.Logger,
) *SeedUseCase {
	return &SeedUseCase{
		adminRepo:    adminRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		hasher:       hasher,
		logger:       logger,
	}
}

// EnsureDefaults создает администратора по умолчанию и демо-каталог,
// если их еще нет.
func (s *SeedUseCase) EnsureDefaults(ctx context.Context, adminUsername, adminPassword string) error {
	const op = "SeedUseCase.EnsureDefaults"

	if err := s.ensureAdmin(ctx, adminUsername, adminPassword); err != nil {
		return e.Wrap(op, err)
	}

	if err := s.ensureCatalog(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (s *SeedUseCase) ensureAdmin(ctx context.Context, username, password string) error {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	if _, err := s.adminRepo.Create(ctx, domain.NewAdmin(username, hash)); err != nil {
		return err
	}

	s.logger.Infof("default admin %q created", username)
	return nil
}

func (s *SeedUseCase) ensureCatalog(ctx context.Context) error {
	count, err := s.productRepo.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	cleaning, err := s.categoryRepo.Create(ctx, domain.NewCategory("Чистящие средства"))
	if err != nil {
		return err
	}
	washing, err := s.categoryRepo.Create(ctx, domain.NewCategory("Моющие средства"))
	if err != nil {
		return err
	}

	// Цены в копейках
	discount := int64(39900)
	defaults := []*domain.Product{
		domain.NewProduct("Универсальный очиститель", 59900, nil, "500 мл", nil, &cleaning.ID),
		domain.NewProduct("Очиститель стекол", 49900, &discount, "750 мл", nil, &cleaning.ID),
		domain.NewProduct("Стиральный порошок", 109900, nil, "2 кг", nil, &washing.ID),
		domain.NewProduct("Жидкость для посуды", 39900, nil, "1 л", nil, &washing.ID),
	}

	for _, product := range defaults {
		if _, err := s.productRepo.Create(ctx, product); err != nil {
			return err
		}
	}

	s.logger.Infof("seeded default catalog: %d products", len(defaults))
	return nil
}
