package usecase

import (
	"strconv"
	"strings"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/shopspring/decimal"
)

// SortOrder задает порядок выдачи товаров.
type SortOrder int

const (
	// SortDefault — детерминированный порядок по возрастанию id.
	SortDefault SortOrder = iota
	// SortPriceAsc — по возрастанию действующей цены.
	SortPriceAsc
	// SortPriceDesc — по убыванию действующей цены.
	SortPriceDesc
)

const (
	// DefaultLimit — размер страницы по умолчанию.
	DefaultLimit = 10
	// MaxLimit — верхняя граница размера страницы.
	MaxLimit = 200

	// CategoryAll — сентинел «все категории»: фильтр по категории не применяется.
	CategoryAll = "all"
)

// maxPriceBound — потолок границы цены в рублях, тот же, что у админских цен:
// 1 млрд рублей заведомо покрывает витрину и держит копейки в пределах int64.
var maxPriceBound = decimal.NewFromInt(1_000_000_000)

// ListProductsParams — сырые параметры запроса списка товаров,
// как они пришли из query string. Пустая строка означает «параметр не передан».
type ListProductsParams struct {
	CategoryID string
	PriceFrom  string
	PriceTo    string
	Search     string
	SortOrder  string
	Limit      string
	Offset     string
}

// ProductFilter — скомпилированное представление фильтра.
// Строится из ListProductsParams один раз и далее не мутируется;
// репозиторий транслирует его в единственный SQL-предикат.
type ProductFilter struct {
	CategoryID   *int64 // nil — без фильтра по категории
	PriceFrom    *int64 // копейки, включительно
	PriceTo      *int64 // копейки, включительно
	SearchTokens []string
	Sort         SortOrder
	Limit        int
	Offset       int
}

// CompileProductFilter валидирует параметры и строит ProductFilter.
//
// Правила композиции:
//   - непустой поиск отключает фильтр по категории: поиск работает по всему
//     каталогу (контракт, а не баг);
//   - поиск нормализуется (trim, схлопывание пробелов, нижний регистр) и
//     разбивается на токены, товар должен содержать каждый токен (AND);
//   - диапазон цен проверяется по действующей цене (скидочной, если она есть);
//   - неизвестное значение sortOrder — это порядок по умолчанию, а не ошибка;
//     некорректное число в числовом параметре — ошибка валидации с именем поля.
func CompileProductFilter(params ListProductsParams) (*ProductFilter, error) {
	filter := &ProductFilter{
		Sort:   parseSortOrder(params.SortOrder),
		Limit:  DefaultLimit,
		Offset: 0,
	}

	filter.SearchTokens = NormalizeSearch(params.Search)

	// Категория учитывается только при пустом поиске
	if len(filter.SearchTokens) == 0 {
		categoryID, err := parseCategoryID(params.CategoryID)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = categoryID
	}

	priceFrom, err := parsePriceBound("priceFrom", params.PriceFrom)
	if err != nil {
		return nil, err
	}
	filter.PriceFrom = priceFrom

	priceTo, err := parsePriceBound("priceTo", params.PriceTo)
	if err != nil {
		return nil, err
	}
	filter.PriceTo = priceTo

	if params.Limit != "" {
		limit, err := parseNonNegativeInt("limit", params.Limit)
		if err != nil {
			return nil, err
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		filter.Limit = limit
	}

	if params.Offset != "" {
		offset, err := parseNonNegativeInt("offset", params.Offset)
		if err != nil {
			return nil, err
		}
		filter.Offset = offset
	}

	return filter, nil
}

// Matches проверяет товар против фильтра. Это эталонная семантика предиката:
// SQL-трансляция в репозитории обязана давать тот же результат.
// Пагинация и сортировка здесь не учитываются.
func (f *ProductFilter) Matches(p *domain.Product) bool {
	if f.CategoryID != nil {
		if p.CategoryID == nil || *p.CategoryID != *f.CategoryID {
			return false
		}
	}

	effective := p.EffectivePrice()
	if f.PriceFrom != nil && effective < *f.PriceFrom {
		return false
	}
	if f.PriceTo != nil && effective > *f.PriceTo {
		return false
	}

	if len(f.SearchTokens) > 0 {
		name := strings.ToLower(p.Name)
		for _, token := range f.SearchTokens {
			if !strings.Contains(name, token) {
				return false
			}
		}
	}

	return true
}

// NormalizeSearch приводит строку поиска к списку токенов:
// trim, нижний регистр, разбиение по пробельным символам.
// Пустая строка дает пустой список — «без фильтра по поиску».
func NormalizeSearch(search string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(search)))
}

func parseSortOrder(raw string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc":
		return SortPriceAsc
	case "desc":
		return SortPriceDesc
	default:
		return SortDefault
	}
}

func parseCategoryID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, CategoryAll) {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, e.Validation("categoryId", "must be an integer or \"all\"")
	}

	return &id, nil
}

// parsePriceBound разбирает десятичную границу цены в копейки.
// Отсутствующий параметр — это nil, мусор на входе — ошибка валидации,
// а не молчаливый ноль.
func parsePriceBound(field, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, e.Validation(field, "must be a decimal number")
	}
	if d.IsNegative() {
		return nil, e.Validation(field, "must be non-negative")
	}
	if d.Exponent() < -2 {
		return nil, e.Validation(field, "at most 2 decimal places")
	}
	// Без потолка IntPart() молча переполнится на абсурдно больших значениях
	if d.GreaterThan(maxPriceBound) {
		return nil, e.Validation(field, "is too large")
	}

	kopecks := d.Mul(decimal.NewFromInt(100)).IntPart()
	return &kopecks, nil
}

func parseNonNegativeInt(field, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, e.Validation(field, "must be an integer")
	}
	if value < 0 {
		return 0, e.Validation(field, "must be non-negative")
	}

	return value, nil
}
