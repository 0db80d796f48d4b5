package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
)

// AdminProductHandler обслуживает CRUD товаров за аутентификацией.
// Создание и обновление принимают multipart/form-data, потому что вместе
// с полями товара может прийти файл изображения.
type AdminProductHandler struct {
	adminUsecase usecase.AdminUC
	logger       logger.Logger
	maxImageSize int64
}

func NewAdminProductHandler(adminUsecase usecase.AdminUC, logger logger.Logger, maxImageSize int64) *AdminProductHandler {
	return &AdminProductHandler{
		adminUsecase: adminUsecase,
		logger:       logger,
		maxImageSize: maxImageSize,
	}
}

type productForm struct {
	Name          string
	Price         int64
	DiscountPrice *int64
	Weight        string
	CategoryID    *int64
}

func parseProductForm(r *http.Request) (*productForm, error) {
	name := strings.TrimSpace(r.FormValue("name"))
	priceStr := r.FormValue("price")
	weight := strings.TrimSpace(r.FormValue("weight"))

	if name == "" || priceStr == "" || weight == "" {
		return nil, e.ErrMissingFields
	}

	price, err := parsePriceToKopecks(priceStr)
	if err != nil {
		return nil, err
	}

	form := &productForm{
		Name:   name,
		Price:  price,
		Weight: weight,
	}

	if raw := strings.TrimSpace(r.FormValue("discountPrice")); raw != "" && raw != "null" {
		discount, err := parsePriceToKopecks(raw)
		if err != nil {
			return nil, err
		}
		form.DiscountPrice = &discount
	}

	if raw := strings.TrimSpace(r.FormValue("categoryId")); raw != "" && raw != "null" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, e.Validation("categoryId", "must be an integer")
		}
		form.CategoryID = &categoryID
	}

	return form, nil
}

// createProduct
//
//	@Summary		Создание товара
//	@Tags			admin
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			name			formData	string	true	"Название"
//	@Param			price			formData	string	true	"Цена в рублях"
//	@Param			discountPrice	formData	string	false	"Цена со скидкой"
//	@Param			weight			formData	string	true	"Вес/объем"
//	@Param			categoryId		formData	int		false	"Категория"
//	@Param			image			formData	file	false	"Изображение"
//	@Success		201				{object}	ProductResponse
//	@Failure		400				{object}	ErrorResponse
//	@Router			/admin/products [post]
func (h *AdminProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 32 << 20

	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageSize+maxMemory)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("create product: %s", err.Error())
		WriteError(w, err)
		return
	}

	form, err := parseProductForm(r)
	if err != nil {
		h.logger.Warnf("create product: %s", err.Error())
		WriteError(w, err)
		return
	}

	image, err := parseOptionalImage(r, "image", h.maxImageSize)
	if err != nil {
		h.logger.Warnf("create product: %s", err.Error())
		WriteError(w, err)
		return
	}

	product, err := h.adminUsecase.CreateProduct(r.Context(), &usecase.CreateProductReq{
		Name:          form.Name,
		Price:         form.Price,
		DiscountPrice: form.DiscountPrice,
		Weight:        form.Weight,
		CategoryID:    form.CategoryID,
		Image:         image,
	})
	if err != nil {
		h.logger.Warnf("create product: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(usecase.ProductListItem{Product: *product}))
}

// updateProduct
//
//	@Summary		Обновление товара
//	@Tags			admin
//	@Security		BearerAuth
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			id	path		int	true	"ID товара"
//	@Success		200	{object}	ProductResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/admin/products/{id} [put]
func (h *AdminProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 32 << 20

	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageSize+maxMemory)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("update product %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	form, err := parseProductForm(r)
	if err != nil {
		h.logger.Warnf("update product %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	image, err := parseOptionalImage(r, "image", h.maxImageSize)
	if err != nil {
		h.logger.Warnf("update product %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	product, err := h.adminUsecase.UpdateProduct(r.Context(), &usecase.UpdateProductReq{
		ID:            id,
		Name:          form.Name,
		Price:         form.Price,
		DiscountPrice: form.DiscountPrice,
		Weight:        form.Weight,
		CategoryID:    form.CategoryID,
		Image:         image,
	})
	if err != nil {
		h.logger.Warnf("update product %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(usecase.ProductListItem{Product: *product}))
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Tags			admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"ID товара"
//	@Success		200	{object}	map[string]bool
//	@Failure		404	{object}	ErrorResponse
//	@Router			/admin/products/{id} [delete]
func (h *AdminProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.adminUsecase.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Warnf("delete product %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]bool{"success": true})
}
