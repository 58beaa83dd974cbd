package database

import (
	"context"
	"fmt"
	"recipe-manager/internal/domain/recipe"
	"recipe-manager/internal/infrastructure/database/models"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) recipe.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]recipe.Category, error) {
	var dbModels []models.CategoryModel
	if err := r.db.DB.WithContext(ctx).Order("name ASC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]recipe.Category, len(dbModels))
	for i, m := range dbModels {
		categories[i] = recipe.Category{ID: m.ID, Name: m.Name}
	}
	return categories, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&models.CategoryModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category: %w", err)
	}
	return count > 0, nil
}
