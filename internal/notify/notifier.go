package notify

import (
	"context"
	"time"
)

// PasswordReset carries everything a delivery channel needs to hand a reset
// link to its owner.
type PasswordReset struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Notifier interface {
	SendPasswordReset(ctx context.Context, msg PasswordReset) error
}
