package service

import (
	"context"
	"fmt"

	"quiz_api/internal/common"
	"quiz_api/internal/domain/model"
	"quiz_api/internal/domain/repository"

	"github.com/gosimple/slug"
)

const (
	DefaultCategoryPageSize = 100
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*model.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("category name is required: %w", common.ErrValidation)
	}

	category := &model.Category{
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, skip, limit int) ([]model.Category, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultCategoryPageSize
	}
	return s.categoryRepo.List(ctx, skip, limit)
}
