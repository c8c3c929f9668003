package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quiz_api/internal/common"
	"quiz_api/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	List(ctx context.Context, skip, limit int) ([]model.Category, error)
}

type pgCategoryRepository struct {
	db *sql.DB
}

func NewPgCategoryRepository(db *sql.DB) CategoryRepository {
	return &pgCategoryRepository{db: db}
}

func (r *pgCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `INSERT INTO categories (name, slug, description)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, category.Name, category.Slug, category.Description).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("category with given name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgCategoryRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCategoryRepository) List(ctx context.Context, skip, limit int) ([]model.Category, error) {
	query := `SELECT id, name, slug, description, created_at
	          FROM categories ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("pgCategoryRepository.List: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgCategoryRepository.List: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCategoryRepository.List: %w", err)
	}
	return categories, nil
}
