package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// ResetTokenRepository stores single-use password reset tokens. Tokens are
// deleted when used or found expired, never flagged.
type ResetTokenRepository interface {
	// Issue deletes every prior token for the user plus any expired token,
	// then stores the new one, in one transaction.
	Issue(ctx context.Context, token *PasswordResetToken, now time.Time) error
	Get(ctx context.Context, token string) (*PasswordResetToken, error)
	Delete(ctx context.Context, token string) error
	// Consume updates the owner's password hash and deletes the token in one
	// transaction. An expired token is deleted and ErrTokenExpired returned.
	Consume(ctx context.Context, token string, now time.Time, passwordHash string) (*PasswordResetToken, error)
}
