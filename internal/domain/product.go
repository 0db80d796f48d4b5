package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID            int64
	Name          string
	Price         int64  // Цена хранится в копейках
	DiscountPrice *int64 // Цена со скидкой в копейках, nil — скидки нет
	Weight        string // Отображаемый вес/объем ("500 мл", "1 кг"), не парсится
	Image         *string
	CategoryID    *int64 // nil — товар без категории
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewProduct(name string, price int64, discountPrice *int64, weight string, image *string, categoryID *int64) *Product {
	return &Product{
		Name:          name,
		Price:         price,
		DiscountPrice: discountPrice,
		Weight:        weight,
		Image:         image,
		CategoryID:    categoryID,
	}
}

// EffectivePrice возвращает действующую цену товара:
// цену со скидкой, если она задана и положительна, иначе базовую цену.
// Именно эта величина участвует в фильтрации по диапазону и сортировке.
func (p *Product) EffectivePrice() int64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 {
		return *p.DiscountPrice
	}
	return p.Price
}
