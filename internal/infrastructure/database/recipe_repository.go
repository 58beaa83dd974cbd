package database

import (
	"context"
	"errors"
	"fmt"
	"recipe-manager/internal/domain/recipe"
	"recipe-manager/internal/infrastructure/database/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository implements recipe.Repository
type RecipeRepository struct {
	db *DB
}

func NewRecipeRepository(db *DB) recipe.Repository {
	return &RecipeRepository{db: db}
}

// recipeRow is the shape of every recipe read joined with its owner.
type recipeRow struct {
	ID            int64
	UserID        int64
	Title         string
	Description   string
	Instructions  string
	PrepTime      string
	CookTime      string
	ImageFilename string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	OwnerUsername string
}

const favoritesSQL = `SELECT r.id, r.user_id, r.title, r.description, r.instructions, r.prep_time, r.cook_time,
r.image_filename, r.created_at, r.updated_at, u.username AS owner_username
FROM favorites f
JOIN recipes r ON r.id = f.recipe_id
JOIN users u ON u.id = r.user_id
WHERE f.user_id = ?
ORDER BY r.title ASC, r.id ASC`

func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe, categoryIDs []int64) ([]int64, error) {
	now := time.Now().UTC()
	dbModel := toRecipeModel(rec)
	dbModel.CreatedAt = now
	dbModel.UpdatedAt = now

	var skipped []int64
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(dbModel).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := insertIngredients(tx, dbModel.ID, rec.Ingredients); err != nil {
			return err
		}

		var err error
		skipped, err = linkCategories(tx, dbModel.ID, categoryIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	rec.ID = dbModel.ID
	rec.CreatedAt = dbModel.CreatedAt
	rec.UpdatedAt = dbModel.UpdatedAt
	return skipped, nil
}

func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe, categoryIDs []int64) ([]int64, error) {
	now := time.Now().UTC()

	var skipped []int64
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.RecipeModel{}).
			Where("id = ? AND user_id = ?", rec.ID, rec.UserID).
			Updates(map[string]interface{}{
				"title":          rec.Title,
				"description":    rec.Description,
				"instructions":   rec.Instructions,
				"prep_time":      rec.PrepTime,
				"cook_time":      rec.CookTime,
				"image_filename": rec.ImageFilename,
				"updated_at":     now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update recipe: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return recipe.ErrRecipeNotFound
		}

		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&models.IngredientModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear ingredients: %w", err)
		}
		if err := insertIngredients(tx, rec.ID, rec.Ingredients); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&models.RecipeCategoryModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipe categories: %w", err)
		}
		var err error
		skipped, err = linkCategories(tx, rec.ID, categoryIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	rec.UpdatedAt = now
	return skipped, nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id, ownerID int64) (*recipe.Recipe, error) {
	var deleted *recipe.Recipe
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dbModel models.RecipeModel
		err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&dbModel).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return recipe.ErrRecipeNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get recipe: %w", err)
		}

		for _, child := range []any{&models.IngredientModel{}, &models.RecipeCategoryModel{}, &models.FavoriteModel{}} {
			if err := tx.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete recipe children: %w", err)
			}
		}
		if err := tx.Where("id = ?", id).Delete(&models.RecipeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}

		deleted = toRecipeEntity(&dbModel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*recipe.Recipe, error) {
	db := r.db.DB.WithContext(ctx)

	var rows []recipeRow
	if err := db.Table("recipes r").
		Select("r.id, r.user_id, r.title, r.description, r.instructions, r.prep_time, r.cook_time, " +
			"r.image_filename, r.created_at, r.updated_at, u.username AS owner_username").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.id = ?", id).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if len(rows) == 0 {
		return nil, recipe.ErrRecipeNotFound
	}
	rec := rows[0].toEntity()

	var ingredients []models.IngredientModel
	if err := db.Where("recipe_id = ?", id).Order("id ASC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	for _, m := range ingredients {
		rec.Ingredients = append(rec.Ingredients, recipe.Ingredient{
			ID:           m.ID,
			RecipeID:     m.RecipeID,
			Name:         m.Name,
			QuantityUnit: m.QuantityUnit,
		})
	}

	var categories []models.CategoryModel
	if err := db.Table("categories c").
		Select("c.id, c.name").
		Joins("JOIN recipe_categories rc ON rc.category_id = c.id").
		Where("rc.recipe_id = ?", id).
		Order("c.name ASC").
		Scan(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get recipe categories: %w", err)
	}
	for _, m := range categories {
		rec.Categories = append(rec.Categories, recipe.Category{ID: m.ID, Name: m.Name})
	}

	return rec, nil
}

func (r *RecipeRepository) List(ctx context.Context, q recipe.ListingQuery) ([]*recipe.Recipe, error) {
	query, args := recipe.BuildListingSQL(q)
	return r.scanRecipes(ctx, query, args...)
}

func (r *RecipeRepository) ListFavorites(ctx context.Context, userID int64) ([]*recipe.Recipe, error) {
	return r.scanRecipes(ctx, favoritesSQL, userID)
}

func (r *RecipeRepository) scanRecipes(ctx context.Context, query string, args ...any) ([]*recipe.Recipe, error) {
	var rows []recipeRow
	if err := r.db.DB.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]*recipe.Recipe, len(rows))
	for i := range rows {
		recipes[i] = rows[i].toEntity()
	}
	return recipes, nil
}

func (r *RecipeRepository) IsFavorite(ctx context.Context, userID, recipeID int64) (bool, error) {
	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&models.FavoriteModel{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

func (r *RecipeRepository) ToggleFavorite(ctx context.Context, userID, recipeID int64) (bool, error) {
	favorited := false
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipes int64
		if err := tx.Model(&models.RecipeModel{}).Where("id = ?", recipeID).Count(&recipes).Error; err != nil {
			return fmt.Errorf("failed to check recipe: %w", err)
		}
		if recipes == 0 {
			return recipe.ErrRecipeNotFound
		}

		result := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.FavoriteModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove favorite: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			return nil
		}

		fav := models.FavoriteModel{UserID: userID, RecipeID: recipeID, CreatedAt: time.Now().UTC()}
		if err := tx.Create(&fav).Error; err != nil {
			return fmt.Errorf("failed to add favorite: %w", err)
		}
		favorited = true
		return nil
	})
	return favorited, err
}

func insertIngredients(tx *gorm.DB, recipeID int64, ingredients []recipe.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	rows := make([]models.IngredientModel, len(ingredients))
	for i, ing := range ingredients {
		rows[i] = models.IngredientModel{
			RecipeID:     recipeID,
			Name:         ing.Name,
			QuantityUnit: ing.QuantityUnit,
		}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert ingredients: %w", err)
	}
	return nil
}

// linkCategories links every id that names an existing category and returns
// the ones that do not, in submission order.
func linkCategories(tx *gorm.DB, recipeID int64, categoryIDs []int64) ([]int64, error) {
	ids := dedupe(categoryIDs)
	if len(ids) == 0 {
		return nil, nil
	}

	var existing []int64
	if err := tx.Model(&models.CategoryModel{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check categories: %w", err)
	}
	found := make(map[int64]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}

	var links []models.RecipeCategoryModel
	var skipped []int64
	for _, id := range ids {
		if !found[id] {
			skipped = append(skipped, id)
			continue
		}
		links = append(links, models.RecipeCategoryModel{RecipeID: recipeID, CategoryID: id})
	}

	if len(links) > 0 {
		if err := tx.Create(&links).Error; err != nil {
			return nil, fmt.Errorf("failed to link categories: %w", err)
		}
	}
	return skipped, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func toRecipeModel(r *recipe.Recipe) *models.RecipeModel {
	return &models.RecipeModel{
		ID:            r.ID,
		UserID:        r.UserID,
		Title:         r.Title,
		Description:   r.Description,
		Instructions:  r.Instructions,
		PrepTime:      r.PrepTime,
		CookTime:      r.CookTime,
		ImageFilename: r.ImageFilename,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toRecipeEntity(m *models.RecipeModel) *recipe.Recipe {
	return &recipe.Recipe{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Description:   m.Description,
		Instructions:  m.Instructions,
		PrepTime:      m.PrepTime,
		CookTime:      m.CookTime,
		ImageFilename: m.ImageFilename,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (row *recipeRow) toEntity() *recipe.Recipe {
	return &recipe.Recipe{
		ID:            row.ID,
		UserID:        row.UserID,
		Title:         row.Title,
		Description:   row.Description,
		Instructions:  row.Instructions,
		PrepTime:      row.PrepTime,
		CookTime:      row.CookTime,
		ImageFilename: row.ImageFilename,
		OwnerUsername: row.OwnerUsername,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
