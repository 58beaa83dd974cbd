package database

import (
	"context"
	"errors"
	"fmt"
	"recipe-manager/internal/domain/user"
	"recipe-manager/internal/infrastructure/database/models"
	"time"

	"gorm.io/gorm"
)

type ResetTokenRepository struct {
	db *DB
}

func NewResetTokenRepository(db *DB) user.ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

func (r *ResetTokenRepository) Issue(ctx context.Context, t *user.PasswordResetToken, now time.Time) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? OR expires_at < ?", t.UserID, now).
			Delete(&models.PasswordResetTokenModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete previous reset tokens: %w", err)
		}

		m := models.PasswordResetTokenModel{
			Token:     t.Token,
			UserID:    t.UserID,
			ExpiresAt: t.ExpiresAt,
			CreatedAt: t.CreatedAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("failed to create reset token: %w", err)
		}
		return nil
	})
}

func (r *ResetTokenRepository) Get(ctx context.Context, token string) (*user.PasswordResetToken, error) {
	var m models.PasswordResetTokenModel
	err := r.db.DB.WithContext(ctx).Where("token = ?", token).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return toTokenEntity(&m), nil
}

func (r *ResetTokenRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.DB.WithContext(ctx).Where("token = ?", token).
		Delete(&models.PasswordResetTokenModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}

func (r *ResetTokenRepository) Consume(ctx context.Context, token string, now time.Time, passwordHash string) (*user.PasswordResetToken, error) {
	var consumed *user.PasswordResetToken
	expired := false

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.PasswordResetTokenModel
		err := tx.Where("token = ?", token).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.ErrTokenNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get reset token: %w", err)
		}

		if err := tx.Where("token = ?", token).Delete(&models.PasswordResetTokenModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete reset token: %w", err)
		}

		consumed = toTokenEntity(&m)
		if consumed.IsExpired(now) {
			// commit the delete, report after
			expired = true
			return nil
		}

		result := tx.Model(&models.UserModel{}).
			Where("id = ?", m.UserID).
			Updates(map[string]interface{}{
				"hash":       passwordHash,
				"updated_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update password: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return user.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return consumed, user.ErrTokenExpired
	}
	return consumed, nil
}

func toTokenEntity(m *models.PasswordResetTokenModel) *user.PasswordResetToken {
	return &user.PasswordResetToken{
		Token:     m.Token,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}
