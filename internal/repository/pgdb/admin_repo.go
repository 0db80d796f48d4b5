package pgdb

import (
	"context"
	"errors"

	"github.com/yamao-tech/catalog-backend/internal/domain"
	"github.com/yamao-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/yamao-tech/catalog-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// AdminRepo реализует репозиторий администраторов поверх PostgreSQL.
type AdminRepo struct {
	pool *pgxpool.Pool
	conv converter.AdminConverter
}

func NewAdminRepo(pool *pgxpool.Pool, conv converter.AdminConverter) *AdminRepo {
	return &AdminRepo{pool: pool, conv: conv}
}

func (a *AdminRepo) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	query := "SELECT id, username, password_hash, created_at FROM admins WHERE id = $1"

	var model converter.AdminModel
	err := a.pool.QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Username, &model.PasswordHash, &model.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return a.conv.ToEntity(&model), nil
}

func (a *AdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := "SELECT id, username, password_hash, created_at FROM admins WHERE username = $1"

	var model converter.AdminModel
	err := a.pool.QueryRow(ctx, query, username).
		Scan(&model.ID, &model.Username, &model.PasswordHash, &model.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return a.conv.ToEntity(&model), nil
}

func (a *AdminRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := a.pool.QueryRow(ctx, "SELECT COUNT(*) FROM admins").Scan(&total); err != nil {
		return 0, storageErr(whereami.WhereAmI(), err)
	}

	return total, nil
}

func (a *AdminRepo) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	query := `
		INSERT INTO admins (username, password_hash) VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
		RETURNING id, username, password_hash, created_at
	`

	var model converter.AdminModel
	err := a.pool.QueryRow(ctx, query, admin.Username, admin.PasswordHash).
		Scan(&model.ID, &model.Username, &model.PasswordHash, &model.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrConflict)
		}
		return nil, storageErr(whereami.WhereAmI(), err)
	}

	return a.conv.ToEntity(&model), nil
}
