package http

import (
	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/shopspring/decimal"
)

// CategorySummary — краткое описание категории внутри товара.
type CategorySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductResponse — товар в ответе API. Цены отдаются в рублях
// как десятичные строки ("499.99"), внутри системы они хранятся в копейках.
type ProductResponse struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice"`
	Weight        string           `json:"weight"`
	Image         *string          `json:"image"`
	CategoryID    *int64           `json:"categoryId"`
	Category      *CategorySummary `json:"category,omitempty"`
}

// ProductPageResponse — вариант выдачи с общим числом совпадений:
// {"count": N, "rows": [...]} при запросе с withCount=true.
type ProductPageResponse struct {
	Count int64             `json:"count"`
	Rows  []ProductResponse `json:"rows"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type DeleteCategoryResponse struct {
	Success              bool  `json:"success"`
	UpdatedProductsCount int64 `json:"updatedProductsCount"`
}

func kopecksToDecimal(kopecks int64) decimal.Decimal {
	return decimal.New(kopecks, -2)
}

func toProductResponse(item usecase.ProductListItem) ProductResponse {
	p := item.Product
	resp := ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Price:      kopecksToDecimal(p.Price),
		Weight:     p.Weight,
		Image:      p.Image,
		CategoryID: p.CategoryID,
	}

	if p.DiscountPrice != nil {
		d := kopecksToDecimal(*p.DiscountPrice)
		resp.DiscountPrice = &d
	}

	if p.CategoryID != nil && item.CategoryName != nil {
		resp.Category = &CategorySummary{ID: *p.CategoryID, Name: *item.CategoryName}
	}

	return resp
}

func toProductResponses(items []usecase.ProductListItem) []ProductResponse {
	responses := make([]ProductResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toProductResponse(item))
	}
	return responses
}

func toCategoryResponses(options []usecase.CategoryOption) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(options))
	for _, option := range options {
		responses = append(responses, CategoryResponse{ID: option.ID, Name: option.Name})
	}
	return responses
}
