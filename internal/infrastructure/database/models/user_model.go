package models

import "time"

// UserModel represents the database model for User
type UserModel struct {
	ID             int64                     `gorm:"primaryKey;autoIncrement"`
	Username       string                    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string                    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHashed string                    `gorm:"column:hash;type:varchar(255);not null"`
	CreatedAt      time.Time                 `gorm:"not null"`
	UpdatedAt      time.Time                 `gorm:"not null"`
	Recipes        []RecipeModel             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Favorites      []FavoriteModel           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ResetTokens    []PasswordResetTokenModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserModel) TableName() string {
	return "users"
}

// PasswordResetTokenModel represents the database model for PasswordResetToken
type PasswordResetTokenModel struct {
	Token     string    `gorm:"primaryKey;type:varchar(64)"`
	UserID    int64     `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}
