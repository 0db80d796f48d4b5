package usecase

import (
	"context"
	"strconv"

	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
)

// AllCategoriesName — подпись синтетической записи «все категории».
const AllCategoriesName = "Все категории"

// CatalogUseCase реализует публичные операции чтения каталога:
// постраничную выдачу товаров по фильтру и список категорий.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	logger       logger.Logger
}

func NewCatalogUC(productRepo ProductRepository, categoryRepo CategoryRepository, logger logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ListProducts компилирует фильтр из параметров запроса и возвращает страницу
// товаров вместе с общим числом совпадений. Гарантии: len(Items) <= limit,
// порядок соответствует скомпилированной сортировке, Total считается по всему
// фильтру без учета пагинации.
func (c *CatalogUseCase) ListProducts(ctx context.Context, params ListProductsParams) (*ListProductsRes, error) {
	const op = "CatalogUseCase.ListProducts"

	filter, err := CompileProductFilter(params)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	items, err := c.productRepo.List(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	total, err := c.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewListProductsRes(total, items), nil
}

// ListCategories возвращает категории в алфавитном порядке без учета регистра,
// добавляя в начало синтетическую запись "all". Эта запись никогда не
// сохраняется в БД; переданная фильтру, она эквивалентна отсутствию фильтра.
func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]CategoryOption, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	options := make([]CategoryOption, 0, len(categories)+1)
	options = append(options, CategoryOption{ID: CategoryAll, Name: AllCategoriesName})
	for _, category := range categories {
		options = append(options, CategoryOption{
			ID:   strconv.FormatInt(category.ID, 10),
			Name: category.Name,
		})
	}

	return options, nil
}
