package http

import (
	"encoding/json"
	"net/http"

	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
)

// AdminCategoryHandler обслуживает CRUD категорий за аутентификацией.
type AdminCategoryHandler struct {
	adminUsecase usecase.AdminUC
	logger       logger.Logger
}

func NewAdminCategoryHandler(adminUsecase usecase.AdminUC, logger logger.Logger) *AdminCategoryHandler {
	return &AdminCategoryHandler{adminUsecase: adminUsecase, logger: logger}
}

// createCategory
//
//	@Summary		Создание категории
//	@Tags			admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CategoryRequest	true	"Название категории"
//	@Success		201		{object}	CategorySummary
//	@Failure		400		{object}	ErrorResponse
//	@Router			/admin/categories [post]
func (h *AdminCategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.Validation("body", "invalid json"))
		return
	}

	category, err := h.adminUsecase.CreateCategory(r.Context(), req.Name)
	if err != nil {
		h.logger.Warnf("create category: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, CategorySummary{ID: category.ID, Name: category.Name})
}

// renameCategory
//
//	@Summary		Переименование категории
//	@Tags			admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"ID категории"
//	@Param			request	body		CategoryRequest	true	"Новое название"
//	@Success		200		{object}	CategorySummary
//	@Failure		404		{object}	ErrorResponse
//	@Router			/admin/categories/{id} [put]
func (h *AdminCategoryHandler) renameCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, e.Validation("body", "invalid json"))
		return
	}

	category, err := h.adminUsecase.RenameCategory(r.Context(), id, req.Name)
	if err != nil {
		h.logger.Warnf("rename category %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CategorySummary{ID: category.ID, Name: category.Name})
}

// deleteCategory
//
//	@Summary		Удаление категории
//	@Description	Отвязывает все товары категории и удаляет ее в одной транзакции
//	@Tags			admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"ID категории"
//	@Success		200	{object}	DeleteCategoryResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/admin/categories/{id} [delete]
func (h *AdminCategoryHandler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.adminUsecase.DeleteCategory(r.Context(), id)
	if err != nil {
		h.logger.Warnf("delete category %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, DeleteCategoryResponse{
		Success:              true,
		UpdatedProductsCount: res.UpdatedProductsCount,
	})
}
