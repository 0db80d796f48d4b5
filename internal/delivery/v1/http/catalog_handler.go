package http

import (
	"net/http"
	"strconv"

	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
)

// CatalogHandler обслуживает публичные (неаутентифицированные) чтения каталога.
type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает страницу товаров по фильтру. По умолчанию отдается массив; с withCount=true — объект {count, rows}
//	@Tags			catalog
//	@Produce		json
//	@Param			categoryId	query		string	false	"ID категории или all"
//	@Param			priceFrom	query		string	false	"Нижняя граница действующей цены, включительно"
//	@Param			priceTo		query		string	false	"Верхняя граница действующей цены, включительно"
//	@Param			search		query		string	false	"Поиск по названию, все слова должны встречаться"
//	@Param			sortOrder	query		string	false	"asc или desc по действующей цене"
//	@Param			limit		query		int		false	"Размер страницы, по умолчанию 10"
//	@Param			offset		query		int		false	"Смещение, по умолчанию 0"
//	@Param			withCount	query		bool	false	"Вернуть {count, rows} вместо массива"
//	@Success		200			{array}		ProductResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	params := usecase.ListProductsParams{
		CategoryID: query.Get("categoryId"),
		PriceFrom:  query.Get("priceFrom"),
		PriceTo:    query.Get("priceTo"),
		Search:     query.Get("search"),
		SortOrder:  query.Get("sortOrder"),
		Limit:      query.Get("limit"),
		Offset:     query.Get("offset"),
	}

	res, err := h.catalogUsecase.ListProducts(r.Context(), params)
	if err != nil {
		h.logger.Warnf("list products failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	withCount, _ := strconv.ParseBool(query.Get("withCount"))
	if withCount {
		WriteSuccess(w, http.StatusOK, ProductPageResponse{
			Count: res.Total,
			Rows:  toProductResponses(res.Items),
		})
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(res.Items))
}

// listCategories
//
//	@Summary		Список категорий
//	@Description	Категории в алфавитном порядке, первой идет синтетическая запись "all"
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		CategoryResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	options, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		h.logger.Warnf("list categories failed: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toCategoryResponses(options))
}
