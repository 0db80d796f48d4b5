package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
// Мутации выполняются в транзакции из контекста, если она есть.
type ProductRepo struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
	conv   converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, getter *trmpgx.CtxGetter, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool:   pool,
		getter: getter,
		conv:   conv,
	}
}

// List возвращает страницу товаров по скомпилированному фильтру вместе с
// названием категории (LEFT JOIN: товар без категории остается в выдаче).
func (p *ProductRepo) List(ctx context.Context, filter *usecase.ProductFilter) ([]usecase.ProductListItem, error) {
	where, args := buildProductPredicate(filter, 0)

	query := fmt.Sprintf(`
		SELECT
			p.id, p.name, p.price, p.discount_price, p.weight, p.image,
			p.category_id, p.created_at, p.updated_at, c.name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, where, buildProductOrder(filter.Sort), len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductListItem, 0, filter.Limit)
	for rows.Next() {
		var model converter.ProductModel
		var categoryName *string

		if err := rows.Scan(
			&model.ID, &model.Name, &model.Price, &model.DiscountPrice, &model.Weight,
			&model.Image, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt, &categoryName,
		); err != nil {
			return nil, storageErr(whereami.WhereAmI(), err)
		}

		result = append(result, usecase.ProductListItem{
			Product:      *p.conv.ToEntity(&model),
			CategoryName: categoryName,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return result, nil
}

// Count возвращает число всех строк, подходящих под фильтр, без пагинации.
func (p *ProductRepo) Count(ctx context.Context, filter *usecase.ProductFilter) (int64, error) {
	where, args := buildProductPredicate(filter, 0)

	query := fmt.Sprintf("SELECT COUNT(*) FROM products p %s", where)

	var total int64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, storageErr(whereami.WhereAmI(), err)
	}

	return total, nil
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, price, discount_price, weight, image, category_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.Price, &model.DiscountPrice, &model.Weight,
		&model.Image, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	conn := p.getter.DefaultTrOrDB(ctx, p.pool)

	query := `
		INSERT INTO products (name, price, discount_price, weight, image, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, price, discount_price, weight, image, category_id, created_at, updated_at
	`

	var model converter.ProductModel
	err := conn.QueryRow(ctx, query,
		product.Name, product.Price, product.DiscountPrice,
		product.Weight, product.Image, product.CategoryID,
	).Scan(
		&model.ID, &model.Name, &model.Price, &model.DiscountPrice, &model.Weight,
		&model.Image, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	conn := p.getter.DefaultTrOrDB(ctx, p.pool)

	query := `
		UPDATE products
		SET name = $2, price = $3, discount_price = $4, weight = $5, image = $6,
			category_id = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, price, discount_price, weight, image, category_id, created_at, updated_at
	`

	var model converter.ProductModel
	err := conn.QueryRow(ctx, query,
		product.ID, product.Name, product.Price, product.DiscountPrice,
		product.Weight, product.Image, product.CategoryID,
	).Scan(
		&model.ID, &model.Name, &model.Price, &model.DiscountPrice, &model.Weight,
		&model.Image, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	conn := p.getter.DefaultTrOrDB(ctx, p.pool)

	tag, err := conn.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return storageErr(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

// DetachCategory переводит все товары категории в состояние «без категории».
// Вызывается в одной транзакции с удалением самой категории.
func (p *ProductRepo) DetachCategory(ctx context.Context, categoryID int64) (int64, error) {
	conn := p.getter.DefaultTrOrDB(ctx, p.pool)

	tag, err := conn.Exec(ctx,
		"UPDATE products SET category_id = NULL, updated_at = NOW() WHERE category_id = $1",
		categoryID,
	)
	if err != nil {
		return 0, storageErr(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

func (p *ProductRepo) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := p.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return 0, storageErr(whereami.WhereAmI(), err)
	}

	return total, nil
}
