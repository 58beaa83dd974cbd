package user

import (
	domainUser "recipe-manager/internal/domain/user"
)

type RegisterRequest struct {
	Username     string `form:"username"`
	Email        string `form:"email"`
	Password     string `form:"password"`
	Confirmation string `form:"confirmation"`
}

type LoginRequest struct {
	Identifier string `form:"username_or_email"`
	Password   string `form:"password"`
}

type ForgotPasswordRequest struct {
	Email string `form:"email"`
}

type ResetPasswordRequest struct {
	NewPassword  string `form:"new_password"`
	Confirmation string `form:"confirmation"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password"`
	NewPassword     string `form:"new_password"`
	Confirmation    string `form:"confirmation"`
}

// Identity is what the session keeps about a logged in user.
type Identity struct {
	UserID   int64
	Username string
}

func toIdentity(u *domainUser.User) *Identity {
	return &Identity{UserID: u.ID, Username: u.Username}
}
