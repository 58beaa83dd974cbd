package user

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recipe-manager/internal/config"
	"recipe-manager/internal/infrastructure/database"
	"recipe-manager/internal/infrastructure/database/models"
	"recipe-manager/internal/notify"
	appErrors "recipe-manager/pkg/errors"
	"recipe-manager/pkg/utils"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type recordingNotifier struct {
	sent []notify.PasswordReset
	err  error
}

func (n *recordingNotifier) SendPasswordReset(_ context.Context, msg notify.PasswordReset) error {
	n.sent = append(n.sent, msg)
	return n.err
}

func (n *recordingNotifier) last() notify.PasswordReset {
	return n.sent[len(n.sent)-1]
}

type UserServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	db       *database.DB
	notifier *recordingNotifier
	service  *Service
	clock    time.Time
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupSuite() {
	utils.SetPasswordCost(bcrypt.MinCost)
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	cfg := &config.Config{
		Server:   config.ServerConfig{Environment: "test", BaseURL: "http://recipes.test/"},
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(s.T().TempDir(), "users.db")},
		Auth:     config.AuthConfig{ResetTokenTTL: 5 * time.Minute},
	}
	db, err := database.NewDB(cfg)
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate())
	_, err = db.EnsureSystemUser()
	s.Require().NoError(err)
	s.db = db

	s.notifier = &recordingNotifier{}
	s.service = NewService(
		database.NewUserRepository(db),
		database.NewResetTokenRepository(db),
		s.notifier,
		cfg,
	)
	s.clock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.service.SetClock(func() time.Time { return s.clock })
}

func (s *UserServiceTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *UserServiceTestSuite) register(username, email, password string) *Identity {
	id, err := s.service.Register(s.ctx, &RegisterRequest{
		Username: username, Email: email, Password: password, Confirmation: password,
	})
	s.Require().NoError(err)
	return id
}

func (s *UserServiceTestSuite) tokenCount(query string, args ...any) int64 {
	var n int64
	s.Require().NoError(s.db.DB.Model(&models.PasswordResetTokenModel{}).Where(query, args...).Count(&n).Error)
	return n
}

func (s *UserServiceTestSuite) requestToken(email string) string {
	before := len(s.notifier.sent)
	s.Require().NoError(s.service.ForgotPassword(s.ctx, &ForgotPasswordRequest{Email: email}))
	s.Require().Len(s.notifier.sent, before+1)
	return s.notifier.last().Token
}

func (s *UserServiceTestSuite) assertCode(code string, err error) {
	s.Require().Error(err)
	s.Equal(code, appErrors.CodeOf(err), err.Error())
}

func (s *UserServiceTestSuite) TestRegister() {
	s.Run("Case_ShouldReportFirstFailingCheckInOrder", func() {
		cases := []struct {
			req  RegisterRequest
			want string
		}{
			{RegisterRequest{}, "Must provide username"},
			{RegisterRequest{Username: "cook"}, "Must provide password"},
			{RegisterRequest{Username: "cook", Password: "short"}, "Must confirm password"},
			{RegisterRequest{Username: "cook", Password: "short", Confirmation: "other"}, "Passwords do not match"},
			{RegisterRequest{Username: "cook", Password: "short", Confirmation: "short"}, "Password must be at least 8 characters long."},
			{RegisterRequest{Username: "cook", Password: "longenough", Confirmation: "longenough"}, "Must provide email"},
		}

		for _, tc := range cases {
			_, err := s.service.Register(s.ctx, &tc.req)
			s.assertCode(appErrors.CodeValidation, err)
			s.Equal(tc.want, appErrors.MessageOf(err))
		}
	})

	s.Run("Case_DuplicatesShouldConflict", func() {
		// Arrange
		s.register("chef", "chef@example.com", "password123")

		// Act
		_, userErr := s.service.Register(s.ctx, &RegisterRequest{
			Username: "chef", Email: "other@example.com", Password: "password123", Confirmation: "password123",
		})
		_, emailErr := s.service.Register(s.ctx, &RegisterRequest{
			Username: "chef2", Email: "Chef@Example.com", Password: "password123", Confirmation: "password123",
		})

		// Assert
		s.assertCode(appErrors.CodeConflict, userErr)
		s.Equal("Username already exists", appErrors.MessageOf(userErr))
		s.assertCode(appErrors.CodeConflict, emailErr)
		s.Equal("Email already registered", appErrors.MessageOf(emailErr))
	})

	s.Run("Case_ReservedSystemUsernameShouldConflict", func() {
		_, err := s.service.Register(s.ctx, &RegisterRequest{
			Username: "system_recipes", Email: "sys@example.com", Password: "password123", Confirmation: "password123",
		})
		s.assertCode(appErrors.CodeConflict, err)
	})
}

func (s *UserServiceTestSuite) TestLogin() {
	s.register("baker", "baker@example.com", "password123")

	s.Run("Case_ShouldAcceptUsernameOrEmail", func() {
		byName, err := s.service.Login(s.ctx, &LoginRequest{Identifier: "baker", Password: "password123"})
		s.Require().NoError(err)
		byEmail, err := s.service.Login(s.ctx, &LoginRequest{Identifier: "BAKER@example.com", Password: "password123"})
		s.Require().NoError(err)
		s.Equal(byName, byEmail)
		s.Equal("baker", byName.Username)
	})

	s.Run("Case_UnknownAccountAndWrongPasswordShouldLookIdentical", func() {
		_, unknown := s.service.Login(s.ctx, &LoginRequest{Identifier: "nobody", Password: "password123"})
		_, wrong := s.service.Login(s.ctx, &LoginRequest{Identifier: "baker", Password: "password124"})

		s.assertCode(appErrors.CodeInvalidCredentials, unknown)
		s.assertCode(appErrors.CodeInvalidCredentials, wrong)
		s.Equal(appErrors.MessageOf(unknown), appErrors.MessageOf(wrong))
		s.Equal("Invalid username/email and/or password", appErrors.MessageOf(wrong))
	})

	s.Run("Case_SystemUserShouldNeverLogIn", func() {
		_, err := s.service.Login(s.ctx, &LoginRequest{Identifier: "system_recipes", Password: "NO_LOGIN_HASH"})
		s.assertCode(appErrors.CodeInvalidCredentials, err)
	})

	s.Run("Case_MissingFieldsShouldBeValidationErrors", func() {
		_, err := s.service.Login(s.ctx, &LoginRequest{Password: "x"})
		s.Equal("Must provide username or email", appErrors.MessageOf(err))
		_, err = s.service.Login(s.ctx, &LoginRequest{Identifier: "baker"})
		s.Equal("Must provide password", appErrors.MessageOf(err))
	})
}

func (s *UserServiceTestSuite) TestForgotPassword() {
	owner := s.register("forgetful", "forgetful@example.com", "password123")

	s.Run("Case_UnknownEmailShouldSucceedSilently", func() {
		err := s.service.ForgotPassword(s.ctx, &ForgotPasswordRequest{Email: "ghost@example.com"})

		s.NoError(err)
		s.Empty(s.notifier.sent)
		s.Zero(s.tokenCount("1 = 1"))
	})

	s.Run("Case_ShouldIssueTokenAndSendLink", func() {
		token := s.requestToken("forgetful@example.com")

		msg := s.notifier.last()
		s.Equal(owner.UserID, msg.UserID)
		s.Equal("http://recipes.test/reset-password/"+token, msg.Link)
		s.True(s.clock.Add(5*time.Minute).Equal(msg.ExpiresAt))
		s.Equal(int64(1), s.tokenCount("user_id = ?", owner.UserID))
	})

	s.Run("Case_NewTokenShouldInvalidatePriorOne", func() {
		first := s.requestToken("forgetful@example.com")
		second := s.requestToken("forgetful@example.com")

		s.NotEqual(first, second)
		s.Equal(int64(1), s.tokenCount("user_id = ?", owner.UserID))
		s.assertCode(appErrors.CodeInvalidToken, s.service.ValidateResetToken(s.ctx, first))
		s.NoError(s.service.ValidateResetToken(s.ctx, second))
	})

	s.Run("Case_DeliveryFailureShouldNotFailRequest", func() {
		s.notifier.err = errors.New("broker down")
		defer func() { s.notifier.err = nil }()

		err := s.service.ForgotPassword(s.ctx, &ForgotPasswordRequest{Email: "forgetful@example.com"})

		s.NoError(err)
		s.Equal(int64(1), s.tokenCount("user_id = ?", owner.UserID))
	})

	s.Run("Case_EmptyEmailShouldBeValidationError", func() {
		err := s.service.ForgotPassword(s.ctx, &ForgotPasswordRequest{Email: "  "})
		s.assertCode(appErrors.CodeValidation, err)
	})
}

func (s *UserServiceTestSuite) TestResetPassword() {
	s.register("resetter", "resetter@example.com", "oldpassword")
	issuedAt := s.clock
	valid := &ResetPasswordRequest{NewPassword: "newpassword", Confirmation: "newpassword"}

	s.Run("Case_ShouldSucceedJustBeforeExpiry", func() {
		// Arrange
		s.clock = issuedAt
		token := s.requestToken("resetter@example.com")
		s.clock = issuedAt.Add(4*time.Minute + 59*time.Second)

		// Act
		s.Require().NoError(s.service.ValidateResetToken(s.ctx, token))
		err := s.service.ResetPassword(s.ctx, token, valid)

		// Assert
		s.Require().NoError(err)
		s.Zero(s.tokenCount("token = ?", token))
		_, err = s.service.Login(s.ctx, &LoginRequest{Identifier: "resetter", Password: "newpassword"})
		s.NoError(err)
		s.assertCode(appErrors.CodeInvalidToken, s.service.ResetPassword(s.ctx, token, valid))
	})

	s.Run("Case_ShouldFailJustAfterExpiryAndDeleteToken", func() {
		// Arrange
		s.clock = issuedAt
		token := s.requestToken("resetter@example.com")
		s.clock = issuedAt.Add(5*time.Minute + time.Second)

		// Act
		err := s.service.ResetPassword(s.ctx, token, &ResetPasswordRequest{NewPassword: "thirdpassword", Confirmation: "thirdpassword"})

		// Assert
		s.assertCode(appErrors.CodeInvalidToken, err)
		s.Equal(appErrors.MsgInvalidToken, appErrors.MessageOf(err))
		s.Zero(s.tokenCount("token = ?", token))
		_, err = s.service.Login(s.ctx, &LoginRequest{Identifier: "resetter", Password: "newpassword"})
		s.NoError(err)
	})

	s.Run("Case_ExpiredTokenShouldBePurgedOnValidation", func() {
		s.clock = issuedAt
		token := s.requestToken("resetter@example.com")
		s.clock = issuedAt.Add(6 * time.Minute)

		err := s.service.ValidateResetToken(s.ctx, token)

		s.assertCode(appErrors.CodeInvalidToken, err)
		s.Zero(s.tokenCount("token = ?", token))
	})

	s.Run("Case_FormChecksShouldRunBeforeTokenLookup", func() {
		cases := []struct {
			req  ResetPasswordRequest
			want string
		}{
			{ResetPasswordRequest{NewPassword: "newpassword"}, "Please provide and confirm your new password."},
			{ResetPasswordRequest{NewPassword: "newpassword", Confirmation: "different1"}, "New password and confirmation do not match."},
			{ResetPasswordRequest{NewPassword: "short", Confirmation: "short"}, "Password must be at least 8 characters long."},
		}
		for _, tc := range cases {
			err := s.service.ResetPassword(s.ctx, "no-such-token", &tc.req)
			s.assertCode(appErrors.CodeValidation, err)
			s.Equal(tc.want, appErrors.MessageOf(err))
		}
	})

	s.Run("Case_UnknownTokenShouldBeInvalid", func() {
		s.assertCode(appErrors.CodeInvalidToken, s.service.ValidateResetToken(s.ctx, "missing"))
		s.assertCode(appErrors.CodeInvalidToken, s.service.ResetPassword(s.ctx, "missing", valid))
	})

	s.Run("Case_IssuingShouldSweepOtherExpiredTokens", func() {
		s.clock = issuedAt
		s.register("other", "other@example.com", "password123")
		stale := s.requestToken("other@example.com")
		s.clock = issuedAt.Add(time.Hour)

		s.requestToken("resetter@example.com")

		s.Zero(s.tokenCount("token = ?", stale))
	})
}

func (s *UserServiceTestSuite) TestChangePassword() {
	me := s.register("changer", "changer@example.com", "password123")

	s.Run("Case_ShouldReportFirstFailingCheckInOrder", func() {
		cases := []struct {
			req  ChangePasswordRequest
			want string
		}{
			{ChangePasswordRequest{}, "Must provide current password"},
			{ChangePasswordRequest{CurrentPassword: "password123"}, "Must provide new password"},
			{ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "x"}, "Must confirm new password"},
			{ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "x", Confirmation: "y"}, "New passwords do not match"},
			{ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "x", Confirmation: "x"}, "Password must be at least 8 characters long."},
			{ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123", Confirmation: "password123"}, "New password cannot be the same as current password"},
			{ChangePasswordRequest{CurrentPassword: "wrongpassword", NewPassword: "password456", Confirmation: "password456"}, "Incorrect current password"},
		}
		for _, tc := range cases {
			err := s.service.ChangePassword(s.ctx, me, &tc.req)
			s.assertCode(appErrors.CodeValidation, err)
			s.Equal(tc.want, appErrors.MessageOf(err))
		}
	})

	s.Run("Case_ShouldReplacePassword", func() {
		err := s.service.ChangePassword(s.ctx, me, &ChangePasswordRequest{
			CurrentPassword: "password123", NewPassword: "password456", Confirmation: "password456",
		})
		s.Require().NoError(err)

		_, err = s.service.Login(s.ctx, &LoginRequest{Identifier: "changer", Password: "password123"})
		s.assertCode(appErrors.CodeInvalidCredentials, err)
		_, err = s.service.Login(s.ctx, &LoginRequest{Identifier: "changer", Password: "password456"})
		s.NoError(err)
	})

	s.Run("Case_VanishedUserShouldBeUnauthorized", func() {
		err := s.service.ChangePassword(s.ctx, &Identity{UserID: 99999}, &ChangePasswordRequest{
			CurrentPassword: "password123", NewPassword: "password456", Confirmation: "password456",
		})
		s.assertCode(appErrors.CodeUnauthorized, err)
	})
}

func (s *UserServiceTestSuite) TestResetLink() {
	s.True(strings.HasSuffix(s.service.ResetLink("abc"), "/reset-password/abc"))
	s.False(strings.Contains(s.service.ResetLink("abc"), "//reset"))
}
