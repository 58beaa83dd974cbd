package database

import (
	"errors"
	"fmt"
	"recipe-manager/internal/domain/user"
	"recipe-manager/internal/infrastructure/database/models"
	"recipe-manager/internal/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates or updates the schema for every model.
func (d *DB) Migrate() error {
	if err := d.DB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Database schema migrated", zap.String("driver", d.Driver))
	return nil
}

// EnsureSystemUser returns the id of the reserved account that owns the
// default recipes, creating it on first run.
func (d *DB) EnsureSystemUser() (int64, error) {
	var m models.UserModel
	err := d.DB.Where("username = ?", user.SystemUsername).First(&m).Error
	if err == nil {
		return m.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to load system user: %w", err)
	}

	now := time.Now().UTC()
	m = models.UserModel{
		Username:       user.SystemUsername,
		Email:          "",
		PasswordHashed: user.SystemPasswordHash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := d.DB.Omit(clause.Associations).Create(&m).Error; err != nil {
		return 0, fmt.Errorf("failed to create system user: %w", err)
	}

	logger.Info("System user created",
		zap.Int64("user_id", m.ID),
		zap.String("event", "system_user_created"),
	)
	return m.ID, nil
}

// Seed loads the default categories and recipes. Rows that already exist
// are left alone so it is safe to run on every start.
func (d *DB) Seed(systemUserID int64) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		categoryIDs := make(map[string]int64, len(defaultCategories))
		for _, name := range defaultCategories {
			c := models.CategoryModel{Name: name}
			if err := tx.Where(models.CategoryModel{Name: name}).FirstOrCreate(&c).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", name, err)
			}
			categoryIDs[name] = c.ID
		}

		created := 0
		for _, sr := range defaultRecipes {
			var count int64
			if err := tx.Model(&models.RecipeModel{}).
				Where("user_id = ? AND title = ?", systemUserID, sr.Title).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check default recipe: %w", err)
			}
			if count > 0 {
				continue
			}

			now := time.Now().UTC()
			rm := models.RecipeModel{
				UserID:       systemUserID,
				Title:        sr.Title,
				Description:  sr.Description,
				Instructions: sr.Instructions,
				PrepTime:     sr.PrepTime,
				CookTime:     sr.CookTime,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Omit(clause.Associations).Create(&rm).Error; err != nil {
				return fmt.Errorf("failed to seed recipe %q: %w", sr.Title, err)
			}

			for _, ing := range sr.Ingredients {
				im := models.IngredientModel{RecipeID: rm.ID, Name: ing.Name, QuantityUnit: ing.QuantityUnit}
				if err := tx.Create(&im).Error; err != nil {
					return fmt.Errorf("failed to seed ingredient: %w", err)
				}
			}

			for _, name := range sr.Categories {
				id, ok := categoryIDs[name]
				if !ok {
					logger.Warn("Default recipe references unknown category",
						zap.String("recipe", sr.Title),
						zap.String("category", name),
					)
					continue
				}
				link := models.RecipeCategoryModel{RecipeID: rm.ID, CategoryID: id}
				if err := tx.Create(&link).Error; err != nil {
					return fmt.Errorf("failed to seed recipe category: %w", err)
				}
			}
			created++
		}

		logger.Info("Default data seeded",
			zap.Int("categories", len(categoryIDs)),
			zap.Int("recipes_created", created),
			zap.String("event", "default_data_seeded"),
		)
		return nil
	})
}
