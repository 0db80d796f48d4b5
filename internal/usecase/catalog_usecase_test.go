package usecase

import (
	"context"
	"testing"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedScenario(repo *memProductRepo) {
	// Две категории и четыре товара: A(100, cat1), B(200→150, cat1),
	// C(50, cat2), D(300→80, cat2). Цены в копейках.
	repo.categories[1] = "Чистящие средства"
	repo.categories[2] = "Моющие средства"

	repo.add(domain.Product{ID: 1, Name: "A", Price: 10000, Weight: "1 кг", CategoryID: ptr(1)})
	repo.add(domain.Product{ID: 2, Name: "B", Price: 20000, DiscountPrice: ptr(15000), Weight: "1 кг", CategoryID: ptr(1)})
	repo.add(domain.Product{ID: 3, Name: "C", Price: 5000, Weight: "1 кг", CategoryID: ptr(2)})
	repo.add(domain.Product{ID: 4, Name: "D", Price: 30000, DiscountPrice: ptr(8000), Weight: "1 кг", CategoryID: ptr(2)})
}

func TestListProductsPriceRangeWithDiscounts(t *testing.T) {
	repo := newMemProductRepo()
	seedScenario(repo)
	uc := NewCatalogUC(repo, newMemCategoryRepo(), nopLogger{})

	// Диапазон 60–160 руб по действующей цене, сортировка asc:
	// D(80) < A(100) < B(150); C(50) и базовая цена D(300) вне диапазона
	res, err := uc.ListProducts(context.Background(), ListProductsParams{
		PriceFrom: "60",
		PriceTo:   "160",
		SortOrder: "asc",
	})
	require.NoError(t, err)

	require.Len(t, res.Items, 3)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, "D", res.Items[0].Product.Name)
	assert.Equal(t, "A", res.Items[1].Product.Name)
	assert.Equal(t, "B", res.Items[2].Product.Name)
}

func TestListProductsSearchSpansAllCategories(t *testing.T) {
	repo := newMemProductRepo()
	repo.categories[1] = "Чистящие средства"
	repo.categories[2] = "Моющие средства"
	repo.add(domain.Product{ID: 1, Name: "Мыло хозяйственное", Price: 5000, Weight: "200 г", CategoryID: ptr(1)})
	repo.add(domain.Product{ID: 2, Name: "Жидкое мыло", Price: 9000, Weight: "500 мл", CategoryID: ptr(2)})
	repo.add(domain.Product{ID: 3, Name: "Порошок", Price: 30000, Weight: "3 кг", CategoryID: ptr(2)})

	uc := NewCatalogUC(repo, newMemCategoryRepo(), nopLogger{})

	res, err := uc.ListProducts(context.Background(), ListProductsParams{
		CategoryID: "1",
		Search:     "мыло",
	})
	require.NoError(t, err)

	// Поиск глобален: найден товар и из категории 2
	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(1), res.Items[0].Product.ID)
	assert.Equal(t, int64(2), res.Items[1].Product.ID)
}

func TestListProductsPaginationIsStable(t *testing.T) {
	repo := newMemProductRepo()
	// Много товаров с повторяющимися ценами: порядок держится на тай-брейке по id
	for i := int64(1); i <= 30; i++ {
		repo.add(domain.Product{ID: i, Name: "Товар", Price: (i%5 + 1) * 1000, Weight: "1"})
	}
	uc := NewCatalogUC(repo, newMemCategoryRepo(), nopLogger{})

	var paged []int64
	for _, offset := range []string{"0", "10", "20"} {
		res, err := uc.ListProducts(context.Background(), ListProductsParams{
			SortOrder: "asc",
			Limit:     "10",
			Offset:    offset,
		})
		require.NoError(t, err)
		for _, item := range res.Items {
			paged = append(paged, item.Product.ID)
		}
	}

	whole, err := uc.ListProducts(context.Background(), ListProductsParams{
		SortOrder: "asc",
		Limit:     "30",
	})
	require.NoError(t, err)

	var wholeIDs []int64
	for _, item := range whole.Items {
		wholeIDs = append(wholeIDs, item.Product.ID)
	}

	// Страницы без дыр и дублей складываются в сплошную выдачу
	assert.Equal(t, wholeIDs, paged)
	seen := map[int64]bool{}
	for _, id := range paged {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestListProductsSortTieBreakByID(t *testing.T) {
	repo := newMemProductRepo()
	repo.add(domain.Product{ID: 7, Name: "A", Price: 10000, Weight: "1"})
	repo.add(domain.Product{ID: 3, Name: "B", Price: 12000, DiscountPrice: ptr(10000), Weight: "1"})
	uc := NewCatalogUC(repo, newMemCategoryRepo(), nopLogger{})

	for _, order := range []string{"asc", "desc"} {
		res, err := uc.ListProducts(context.Background(), ListProductsParams{SortOrder: order})
		require.NoError(t, err)
		require.Len(t, res.Items, 2)
		// Равные действующие цены — первым меньший id при любом направлении
		assert.Equal(t, int64(3), res.Items[0].Product.ID, "order=%s", order)
		assert.Equal(t, int64(7), res.Items[1].Product.ID, "order=%s", order)
	}
}

func TestListProductsLimitGuarantee(t *testing.T) {
	repo := newMemProductRepo()
	for i := int64(1); i <= 25; i++ {
		repo.add(domain.Product{ID: i, Name: "Товар", Price: 1000, Weight: "1"})
	}
	uc := NewCatalogUC(repo, newMemCategoryRepo(), nopLogger{})

	res, err := uc.ListProducts(context.Background(), ListProductsParams{})
	require.NoError(t, err)

	assert.Len(t, res.Items, DefaultLimit)
	assert.Equal(t, int64(25), res.Total)
}

func TestListProductsValidationErrorPropagates(t *testing.T) {
	uc := NewCatalogUC(newMemProductRepo(), newMemCategoryRepo(), nopLogger{})

	_, err := uc.ListProducts(context.Background(), ListProductsParams{PriceFrom: "дорого"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priceFrom")
}

func TestListCategories(t *testing.T) {
	catRepo := newMemCategoryRepo()
	catRepo.add("моющие средства")
	catRepo.add("Аксессуары")
	catRepo.add("Бытовая химия")

	uc := NewCatalogUC(newMemProductRepo(), catRepo, nopLogger{})

	options, err := uc.ListCategories(context.Background())
	require.NoError(t, err)

	require.Len(t, options, 4)
	// Синтетическая запись "all" всегда первая и не приходит из БД
	assert.Equal(t, CategoryAll, options[0].ID)
	assert.Equal(t, AllCategoriesName, options[0].Name)
	// Остальные — по алфавиту без учета регистра
	assert.Equal(t, "Аксессуары", options[1].Name)
	assert.Equal(t, "Бытовая химия", options[2].Name)
	assert.Equal(t, "моющие средства", options[3].Name)
}
