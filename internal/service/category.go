package service

import (
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryService инкапсулирует администрирование категорий.
type CategoryService struct {
	repo repo.CategoryRepository
}

func NewCategoryService(r repo.CategoryRepository) *CategoryService {
	return &CategoryService{repo: r}
}

// List возвращает все категории с живым счётчиком заметок.
func (s *CategoryService) List(ctx context.Context) ([]model.CategoryWithCount, error) {
	rows, err := s.repo.ListWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return rows, nil
}

// Create добавляет категорию с уникальным именем.
func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, ErrValidation
	}

	existing, err := s.repo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking category name: %w", err)
	}
	if existing != nil {
		return nil, ErrCategoryTaken
	}

	cat := &model.Category{ID: uuid.NewString(), Name: name}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return cat, nil
}

// Rename переименовывает категорию.
func (s *CategoryService) Rename(ctx context.Context, id, name string) (*model.Category, error) {
	if name == "" {
		return nil, ErrValidation
	}
	cat, err := s.repo.UpdateName(ctx, id, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("renaming category: %w", err)
	}
	return cat, nil
}

// Delete удаляет категорию. Заметки с её ссылкой не трогаются и не переназначаются.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}
