package service

import (
	"context"
	"errors"
	"strings"

	"github.com/nvoss/storefront/internal/domain"
	"github.com/nvoss/storefront/internal/repository"
)

type CategoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Add(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	category := &domain.Category{Name: name, Active: true}
	if err := s.categories.Insert(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.NewValidationError("name", "category %q already exists", name)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Edit(ctx context.Context, id, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.NewValidationError("name", "category %q already exists", name)
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.NewValidationError("ids", "at least one category id is required")
	}

	deleted, err := s.categories.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, repository.ErrCategoryNotFound
	}
	return deleted, nil
}
