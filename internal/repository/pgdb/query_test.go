package pgdb

import (
	"testing"

	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func TestBuildProductPredicateEmpty(t *testing.T) {
	where, args := buildProductPredicate(&usecase.ProductFilter{}, 0)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildProductPredicateCategory(t *testing.T) {
	where, args := buildProductPredicate(&usecase.ProductFilter{CategoryID: ptr(5)}, 0)
	assert.Equal(t, "WHERE p.category_id = $1", where)
	assert.Equal(t, []any{int64(5)}, args)
}

func TestBuildProductPredicatePriceRangeUsesEffectivePrice(t *testing.T) {
	where, args := buildProductPredicate(&usecase.ProductFilter{
		PriceFrom: ptr(9500),
		PriceTo:   ptr(12000),
	}, 0)

	// Обе границы применяются к одному производному значению,
	// а не к паре независимых колонок
	assert.Equal(t,
		"WHERE CASE WHEN p.discount_price > 0 THEN p.discount_price ELSE p.price END >= $1"+
			" AND CASE WHEN p.discount_price > 0 THEN p.discount_price ELSE p.price END <= $2",
		where,
	)
	assert.Equal(t, []any{int64(9500), int64(12000)}, args)
}

func TestBuildProductPredicateSearchTokens(t *testing.T) {
	where, args := buildProductPredicate(&usecase.ProductFilter{
		SearchTokens: []string{"чистящее", "средство"},
	}, 0)

	assert.Equal(t,
		"WHERE p.name ILIKE '%' || $1 || '%' AND p.name ILIKE '%' || $2 || '%'",
		where,
	)
	assert.Equal(t, []any{"чистящее", "средство"}, args)
}

func TestBuildProductPredicateArgOffset(t *testing.T) {
	where, args := buildProductPredicate(&usecase.ProductFilter{CategoryID: ptr(1), PriceFrom: ptr(100)}, 3)
	assert.Contains(t, where, "$4")
	assert.Contains(t, where, "$5")
	assert.Len(t, args, 2)
}

func TestBuildProductOrder(t *testing.T) {
	assert.Equal(t,
		"ORDER BY CASE WHEN p.discount_price > 0 THEN p.discount_price ELSE p.price END ASC, p.id ASC",
		buildProductOrder(usecase.SortPriceAsc),
	)
	assert.Equal(t,
		"ORDER BY CASE WHEN p.discount_price > 0 THEN p.discount_price ELSE p.price END DESC, p.id ASC",
		buildProductOrder(usecase.SortPriceDesc),
	)
	// Ценовая сортировка всегда добивается тай-брейком по id,
	// дефолтный порядок — тоже по id
	assert.Equal(t, "ORDER BY p.id ASC", buildProductOrder(usecase.SortDefault))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
	assert.Equal(t, "мыло", escapeLike("мыло"))
}
