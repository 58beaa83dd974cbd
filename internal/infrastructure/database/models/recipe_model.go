package models

import "time"

type RecipeModel struct {
	ID               int64                 `gorm:"primaryKey;autoIncrement"`
	UserID           int64                 `gorm:"not null;index"`
	Title            string                `gorm:"type:varchar(255);not null;index"`
	Description      string                `gorm:"type:text;not null;default:''"`
	Instructions     string                `gorm:"type:text;not null"`
	PrepTime         string                `gorm:"type:varchar(100);not null;default:''"`
	CookTime         string                `gorm:"type:varchar(100);not null;default:''"`
	ImageFilename    string                `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt        time.Time             `gorm:"not null"`
	UpdatedAt        time.Time             `gorm:"not null"`
	Ingredients      []IngredientModel     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	RecipeCategories []RecipeCategoryModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Favorites        []FavoriteModel       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (RecipeModel) TableName() string {
	return "recipes"
}

type IngredientModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	RecipeID     int64  `gorm:"not null;index"`
	Name         string `gorm:"type:varchar(255);not null"`
	QuantityUnit string `gorm:"type:varchar(255);not null;default:''"`
}

func (IngredientModel) TableName() string {
	return "ingredients"
}

type CategoryModel struct {
	ID               int64                 `gorm:"primaryKey;autoIncrement"`
	Name             string                `gorm:"type:varchar(100);not null;uniqueIndex"`
	RecipeCategories []RecipeCategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// RecipeCategoryModel is the recipe-to-category junction row.
type RecipeCategoryModel struct {
	RecipeID   int64 `gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (RecipeCategoryModel) TableName() string {
	return "recipe_categories"
}

type FavoriteModel struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false"`
	RecipeID  int64     `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (FavoriteModel) TableName() string {
	return "favorites"
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&RecipeModel{},
		&IngredientModel{},
		&RecipeCategoryModel{},
		&FavoriteModel{},
		&PasswordResetTokenModel{},
	}
}
