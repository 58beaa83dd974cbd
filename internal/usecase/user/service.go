package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-manager/internal/config"
	domainUser "recipe-manager/internal/domain/user"
	"recipe-manager/internal/logger"
	"recipe-manager/internal/metrics"
	"recipe-manager/internal/notify"
	appErrors "recipe-manager/pkg/errors"
	"recipe-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultResetTokenTTL = 5 * time.Minute

	MsgForgotPasswordSent = "If an account with that email exists, a password reset link has been sent to your email."
	msgPasswordTooShort   = "Password must be at least 8 characters long."
)

// Service implements user use cases
type Service struct {
	userRepo  domainUser.Repository
	tokenRepo domainUser.ResetTokenRepository
	notifier  notify.Notifier
	resetTTL  time.Duration
	baseURL   string
	now       func() time.Time
}

// NewService creates a new user service
func NewService(
	userRepo domainUser.Repository,
	tokenRepo domainUser.ResetTokenRepository,
	notifier notify.Notifier,
	cfg *config.Config,
) *Service {
	ttl := cfg.Auth.ResetTokenTTL
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		notifier:  notifier,
		resetTTL:  ttl,
		baseURL:   strings.TrimRight(cfg.Server.BaseURL, "/"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for token expiry.
func (s *Service) SetClock(now func() time.Time) {
	s.now = func() time.Time { return now().UTC() }
}

// Register checks the form fields in a fixed order and reports the first
// failure, then checks username and email uniqueness.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Identity, error) {
	username := utils.SanitizeString(req.Username)
	email := utils.SanitizeEmail(req.Email)

	switch {
	case username == "":
		return nil, appErrors.Validation("Must provide username")
	case req.Password == "":
		return nil, appErrors.Validation("Must provide password")
	case req.Confirmation == "":
		return nil, appErrors.Validation("Must confirm password")
	case req.Password != req.Confirmation:
		return nil, appErrors.Validation("Passwords do not match")
	case len(req.Password) < utils.MinPasswordLength:
		return nil, appErrors.Validation(msgPasswordTooShort)
	case email == "":
		return nil, appErrors.Validation("Must provide email")
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, s.registerConflict(domainUser.ErrUsernameExists, username)
	} else if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, appErrors.Storage(err)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, s.registerConflict(domainUser.ErrEmailExists, username)
	} else if !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, appErrors.Storage(err)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Storage(fmt.Errorf("failed to hash password: %w", err))
	}

	u := &domainUser.User{
		Username:       username,
		Email:          email,
		PasswordHashed: hashed,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		// a concurrent registration can still win the unique index
		if errors.Is(err, domainUser.ErrUsernameExists) || errors.Is(err, domainUser.ErrEmailExists) {
			return nil, s.registerConflict(err, username)
		}
		logger.Error("Failed to create user", zap.String("username", username), zap.Error(err))
		return nil, appErrors.Storage(err)
	}

	metrics.AuthEvents.WithLabelValues("registered").Inc()
	logger.Info("User registered successfully",
		zap.Int64("user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("event", "user_registered"),
	)
	return toIdentity(u), nil
}

func (s *Service) registerConflict(err error, username string) error {
	msg := "Username already exists"
	if errors.Is(err, domainUser.ErrEmailExists) {
		msg = "Email already registered"
	}
	metrics.AuthEvents.WithLabelValues("register_conflict").Inc()
	logger.Warn("Registration attempt with existing credentials",
		zap.String("username", username),
		zap.String("reason", err.Error()),
		zap.String("event", "registration_failed_duplicate"),
	)
	return appErrors.Conflict(msg, err)
}

// Login accepts a username or an email. Unknown account and wrong password
// fail with the same error.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*Identity, error) {
	identifier := utils.SanitizeString(req.Identifier)
	if strings.Contains(identifier, "@") {
		identifier = utils.SanitizeEmail(identifier)
	}

	if identifier == "" {
		return nil, appErrors.Validation("Must provide username or email")
	}
	if req.Password == "" {
		return nil, appErrors.Validation("Must provide password")
	}

	u, err := s.userRepo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			metrics.AuthEvents.WithLabelValues("login_failed").Inc()
			logger.Warn("Login attempt for unknown account",
				zap.String("identifier", identifier),
				zap.String("event", "login_failed_unknown_account"),
			)
			return nil, appErrors.InvalidCredentials()
		}
		return nil, appErrors.Storage(err)
	}

	if !utils.CheckPassword(u.PasswordHashed, req.Password) {
		metrics.AuthEvents.WithLabelValues("login_failed").Inc()
		logger.Warn("Login attempt with invalid password",
			zap.Int64("user_id", u.ID),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.InvalidCredentials()
	}

	metrics.AuthEvents.WithLabelValues("login").Inc()
	logger.Info("User logged in successfully",
		zap.Int64("user_id", u.ID),
		zap.String("username", u.Username),
		zap.String("event", "login_success"),
	)
	return toIdentity(u), nil
}

func (s *Service) Logout(_ context.Context, identity *Identity) {
	if identity == nil {
		return
	}
	metrics.AuthEvents.WithLabelValues("logout").Inc()
	logger.Info("User logged out",
		zap.Int64("user_id", identity.UserID),
		zap.String("event", "logout"),
	)
}

// ForgotPassword issues a fresh reset token when the email belongs to an
// account. The caller shows the same message either way.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	email := utils.SanitizeEmail(req.Email)
	if email == "" {
		return appErrors.Validation("Please provide your email address.")
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Password reset requested for unknown email",
				zap.String("event", "password_reset_requested_unknown_email"),
			)
			return nil
		}
		return appErrors.Storage(err)
	}

	now := s.now()
	token := &domainUser.PasswordResetToken{
		Token:     uuid.New().String(),
		UserID:    u.ID,
		ExpiresAt: now.Add(s.resetTTL),
		CreatedAt: now,
	}
	if err := s.tokenRepo.Issue(ctx, token, now); err != nil {
		logger.Error("Failed to issue password reset token", zap.Int64("user_id", u.ID), zap.Error(err))
		return appErrors.Storage(err)
	}

	metrics.AuthEvents.WithLabelValues("reset_requested").Inc()
	logger.Info("Password reset token issued",
		zap.Int64("user_id", u.ID),
		zap.Time("expires_at", token.ExpiresAt),
		zap.String("event", "password_reset_token_issued"),
	)

	msg := notify.PasswordReset{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Token:     token.Token,
		Link:      s.ResetLink(token.Token),
		ExpiresAt: token.ExpiresAt,
	}
	if err := s.notifier.SendPasswordReset(ctx, msg); err != nil {
		// the token stays valid; the user can ask again
		logger.Error("Failed to deliver password reset link",
			zap.Int64("user_id", u.ID),
			zap.String("event", "password_reset_delivery_failed"),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Service) ResetLink(token string) string {
	return s.baseURL + "/reset-password/" + token
}

// ValidateResetToken checks a token before the reset form is shown. An
// expired token is deleted on sight.
func (s *Service) ValidateResetToken(ctx context.Context, token string) error {
	if token == "" {
		return appErrors.InvalidToken()
	}

	t, err := s.tokenRepo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domainUser.ErrTokenNotFound) {
			return appErrors.InvalidToken()
		}
		return appErrors.Storage(err)
	}

	if t.IsExpired(s.now()) {
		if err := s.tokenRepo.Delete(ctx, token); err != nil {
			logger.Warn("Failed to purge expired reset token", zap.Int64("user_id", t.UserID), zap.Error(err))
		}
		metrics.AuthEvents.WithLabelValues("reset_token_expired").Inc()
		return appErrors.InvalidToken()
	}
	return nil
}

// ResetPassword validates the new password, then consumes the token and
// stores the new hash in one transaction.
func (s *Service) ResetPassword(ctx context.Context, token string, req *ResetPasswordRequest) error {
	switch {
	case req.NewPassword == "" || req.Confirmation == "":
		return appErrors.Validation("Please provide and confirm your new password.")
	case req.NewPassword != req.Confirmation:
		return appErrors.Validation("New password and confirmation do not match.")
	case len(req.NewPassword) < utils.MinPasswordLength:
		return appErrors.Validation(msgPasswordTooShort)
	}
	if token == "" {
		return appErrors.InvalidToken()
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.Storage(fmt.Errorf("failed to hash password: %w", err))
	}

	t, err := s.tokenRepo.Consume(ctx, token, s.now(), hashed)
	if err != nil {
		switch {
		case errors.Is(err, domainUser.ErrTokenNotFound),
			errors.Is(err, domainUser.ErrTokenExpired),
			errors.Is(err, domainUser.ErrUserNotFound):
			metrics.AuthEvents.WithLabelValues("reset_rejected").Inc()
			return appErrors.InvalidToken()
		}
		logger.Error("Failed to reset password", zap.Error(err))
		return appErrors.Storage(err)
	}

	metrics.AuthEvents.WithLabelValues("reset_completed").Inc()
	logger.Info("Password reset completed",
		zap.Int64("user_id", t.UserID),
		zap.String("event", "password_reset_completed"),
	)
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, identity *Identity, req *ChangePasswordRequest) error {
	switch {
	case req.CurrentPassword == "":
		return appErrors.Validation("Must provide current password")
	case req.NewPassword == "":
		return appErrors.Validation("Must provide new password")
	case req.Confirmation == "":
		return appErrors.Validation("Must confirm new password")
	case req.NewPassword != req.Confirmation:
		return appErrors.Validation("New passwords do not match")
	case len(req.NewPassword) < utils.MinPasswordLength:
		return appErrors.Validation(msgPasswordTooShort)
	case req.NewPassword == req.CurrentPassword:
		return appErrors.Validation("New password cannot be the same as current password")
	}

	u, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return appErrors.NewAppError(appErrors.CodeUnauthorized, "User not found.", appErrors.ErrUnauthorized)
		}
		return appErrors.Storage(err)
	}

	if !utils.CheckPassword(u.PasswordHashed, req.CurrentPassword) {
		logger.Warn("Password change with incorrect current password",
			zap.Int64("user_id", u.ID),
			zap.String("event", "password_change_failed"),
		)
		return appErrors.Validation("Incorrect current password")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.Storage(fmt.Errorf("failed to hash password: %w", err))
	}

	if err := s.userRepo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		logger.Error("Failed to update password", zap.Int64("user_id", u.ID), zap.Error(err))
		return appErrors.Storage(err)
	}

	metrics.AuthEvents.WithLabelValues("password_changed").Inc()
	logger.Info("Password changed successfully",
		zap.Int64("user_id", u.ID),
		zap.String("event", "password_changed"),
	)
	return nil
}
