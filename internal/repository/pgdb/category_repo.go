package pgdb

import (
	"context"
	"errors"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
type CategoryRepo struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
	conv   converter.CategoryConverter
}

func NewCategoryRepo(pool *pgxpool.Pool, getter *trmpgx.CtxGetter, conv converter.CategoryConverter) *CategoryRepo {
	return &CategoryRepo{pool: pool, getter: getter, conv: conv}
}

// List возвращает категории в алфавитном порядке без учета регистра.
func (c *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM categories
		ORDER BY LOWER(name), id
	`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		return nil, storageErr(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt); err != nil {
			return nil, storageErr(whereami.WhereAmI(), err)
		}

		result = append(result, *c.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return result, nil
}

func (c *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := "SELECT id, name, created_at, updated_at FROM categories WHERE id = $1"

	var model converter.CategoryModel
	err := c.pool.QueryRow(ctx, query, id).Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	conn := c.getter.DefaultTrOrDB(ctx, c.pool)

	query := `
		INSERT INTO categories (name) VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`

	var model converter.CategoryModel
	if err := conn.QueryRow(ctx, query, category.Name).
		Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt); err != nil {
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) Rename(ctx context.Context, id int64, name string) (*domain.Category, error) {
	conn := c.getter.DefaultTrOrDB(ctx, c.pool)

	query := `
		UPDATE categories SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at
	`

	var model converter.CategoryModel
	err := conn.QueryRow(ctx, query, id, name).
		Scan(&model.ID, &model.Name, &model.CreatedAt, &model.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
		}
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

func (c *CategoryRepo) Delete(ctx context.Context, id int64) error {
	conn := c.getter.DefaultTrOrDB(ctx, c.pool)

	tag, err := conn.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return storageErr(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrCategoryNotFound)
	}

	return nil
}
