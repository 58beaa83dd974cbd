package user

import "time"

const (
	// SystemUsername owns the default recipes and can never log in.
	SystemUsername     = "system_recipes"
	SystemPasswordHash = "NO_LOGIN_HASH"
)

type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHashed string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type PasswordResetToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
