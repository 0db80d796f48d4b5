package pgdb

import (
	"fmt"
	"strings"

	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/e"
)

// storageErr помечает ошибку хранилища и местом возникновения, и классом
// e.ErrStorage, на который delivery маппит 500.
func storageErr(loc string, err error) error {
	return fmt.Errorf("%s: %w: %v", loc, e.ErrStorage, err)
}

// effectivePriceExpr — действующая цена строки: скидочная цена, если она
// задана и положительна, иначе базовая. Диапазон цен и сортировка всегда
// считаются по этому одному выражению, а не по двум независимым колонкам.
const effectivePriceExpr = "CASE WHEN p.discount_price > 0 THEN p.discount_price ELSE p.price END"

// buildProductPredicate транслирует ProductFilter в единый WHERE-фрагмент
// и список аргументов. Нумерация плейсхолдеров начинается с argOffset+1.
func buildProductPredicate(filter *usecase.ProductFilter, argOffset int) (string, []any) {
	var conditions []string
	var args []any

	next := func() int { return argOffset + len(args) }

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", next()))
	}

	if filter.PriceFrom != nil {
		args = append(args, *filter.PriceFrom)
		conditions = append(conditions, fmt.Sprintf("%s >= $%d", effectivePriceExpr, next()))
	}

	if filter.PriceTo != nil {
		args = append(args, *filter.PriceTo)
		conditions = append(conditions, fmt.Sprintf("%s <= $%d", effectivePriceExpr, next()))
	}

	for _, token := range filter.SearchTokens {
		args = append(args, escapeLike(token))
		conditions = append(conditions, fmt.Sprintf("p.name ILIKE '%%' || $%d || '%%'", next()))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// buildProductOrder возвращает ORDER BY для фильтра. Внутри ценовой
// сортировки равные цены упорядочиваются по возрастанию id, чтобы пагинация
// была воспроизводимой между запросами.
func buildProductOrder(sort usecase.SortOrder) string {
	switch sort {
	case usecase.SortPriceAsc:
		return fmt.Sprintf("ORDER BY %s ASC, p.id ASC", effectivePriceExpr)
	case usecase.SortPriceDesc:
		return fmt.Sprintf("ORDER BY %s DESC, p.id ASC", effectivePriceExpr)
	default:
		return "ORDER BY p.id ASC"
	}
}

// escapeLike экранирует спецсимволы LIKE, чтобы токен поиска означал
// буквальную подстроку.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
