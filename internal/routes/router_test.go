package routes_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"recipe-manager/internal/config"
	"recipe-manager/internal/infrastructure/database"
	"recipe-manager/internal/middleware"
	"recipe-manager/internal/notify"
	"recipe-manager/internal/routes"
	"recipe-manager/internal/storage"
	appErrors "recipe-manager/pkg/errors"
	"recipe-manager/pkg/utils"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type discardNotifier struct{}

func (discardNotifier) SendPasswordReset(context.Context, notify.PasswordReset) error { return nil }

type RouterTestSuite struct {
	suite.Suite
	db     *database.DB
	server *httptest.Server
	client *http.Client
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupSuite() {
	utils.SetPasswordCost(bcrypt.MinCost)
}

func (s *RouterTestSuite) TearDownSuite() {
	utils.SetPasswordCost(bcrypt.DefaultCost)
}

func (s *RouterTestSuite) SetupTest() {
	dir := s.T().TempDir()
	cfg := &config.Config{
		Server:   config.ServerConfig{Environment: "test", BaseURL: "http://recipes.test"},
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(dir, "recipes.db")},
		Session:  config.SessionConfig{Secret: "router-test-session-secret-key!!", MaxAge: 3600},
		Storage:  config.StorageConfig{UploadDir: filepath.Join(dir, "uploads"), MaxUploadBytes: 1 << 20},
		RateLimit: config.RateLimitConfig{
			GeneralRPS: 1000, GeneralBurst: 1000,
			AuthRPS: 1000, AuthBurst: 1000,
		},
	}

	db, err := database.NewDB(cfg)
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate())
	systemUserID, err := db.EnsureSystemUser()
	s.Require().NoError(err)
	s.Require().NoError(db.Seed(systemUserID))
	s.db = db

	images, err := storage.NewFileStore(cfg.Storage.UploadDir, cfg.Storage.MaxUploadBytes)
	s.Require().NoError(err)

	router, err := routes.SetupRoutes(cfg, db, images, discardNotifier{}, systemUserID)
	s.Require().NoError(err)
	s.server = httptest.NewServer(router)

	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	s.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s *RouterTestSuite) TearDownTest() {
	s.server.Close()
	s.Require().NoError(s.db.Close())
}

func (s *RouterTestSuite) get(path string) (*http.Response, string) {
	resp, err := s.client.Get(s.server.URL + path)
	s.Require().NoError(err)
	return resp, s.body(resp)
}

func (s *RouterTestSuite) post(path string, form url.Values) (*http.Response, string) {
	resp, err := s.client.PostForm(s.server.URL+path, form)
	s.Require().NoError(err)
	return resp, s.body(resp)
}

func (s *RouterTestSuite) body(resp *http.Response) string {
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return string(b)
}

func (s *RouterTestSuite) registerAndLogin(username string) {
	resp, _ := s.post("/register", url.Values{
		"username":     {username},
		"email":        {username + "@example.com"},
		"password":     {"password123"},
		"confirmation": {"password123"},
	})
	s.Require().Equal(http.StatusFound, resp.StatusCode)

	resp, _ = s.post("/login", url.Values{
		"username_or_email": {username},
		"password":          {"password123"},
	})
	s.Require().Equal(http.StatusFound, resp.StatusCode)
	s.Require().Equal("/", resp.Header.Get("Location"))
}

func (s *RouterTestSuite) TestHealth_ShouldReportHealthy() {
	resp, body := s.get("/health")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, `"status":"healthy"`)
}

func (s *RouterTestSuite) TestStaticAssets_ShouldBeServedWithSecurityHeaders() {
	resp, body := s.get("/static/style.css")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(body)
	s.Equal("nosniff", resp.Header.Get("X-Content-Type-Options"))
	s.Equal("DENY", resp.Header.Get("X-Frame-Options"))
}

func (s *RouterTestSuite) TestProtectedPage_WithoutLogin_ShouldRedirectToLogin() {
	for _, path := range []string{"/", "/my-recipes", "/favorites", "/recipes/new", "/change-password"} {
		resp, _ := s.get(path)

		s.Equal(http.StatusFound, resp.StatusCode, path)
		s.Equal(middleware.LoginPath, resp.Header.Get("Location"), path)
	}

	_, body := s.get("/login")
	s.Contains(body, middleware.MsgLoginRequired)
}

func (s *RouterTestSuite) TestLoginPage_ShouldNotBeCached() {
	resp, _ := s.get("/login")

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))
}

func (s *RouterTestSuite) TestRegisterAndLogin_ShouldShowRecipeListing() {
	// Arrange
	resp, _ := s.post("/register", url.Values{
		"username":     {"alice"},
		"email":        {"alice@example.com"},
		"password":     {"password123"},
		"confirmation": {"password123"},
	})
	s.Require().Equal(http.StatusFound, resp.StatusCode)
	s.Equal(middleware.LoginPath, resp.Header.Get("Location"))

	_, body := s.get("/login")
	s.Contains(body, "Registration successful! Please log in.")

	// Act
	resp, _ = s.post("/login", url.Values{
		"username_or_email": {"ALICE@example.com"},
		"password":          {"password123"},
	})

	// Assert
	s.Equal(http.StatusFound, resp.StatusCode)
	resp, body = s.get("/")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Welcome back, alice!")
	s.Contains(body, "Simple Scrambled Eggs")
	s.Contains(body, "Classic Guacamole")
	s.Contains(body, "Hello, alice!")
}

func (s *RouterTestSuite) TestRegister_WithMismatchedPasswords_ShouldRerenderForm() {
	resp, body := s.post("/register", url.Values{
		"username":     {"alice"},
		"email":        {"alice@example.com"},
		"password":     {"password123"},
		"confirmation": {"password124"},
	})

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "Passwords do not match")
	s.Contains(body, `value="alice"`)
}

func (s *RouterTestSuite) TestLogin_WithBadPassword_ShouldRenderError() {
	s.registerAndLogin("alice")
	resp, _ := s.get("/logout")
	s.Require().Equal(http.StatusFound, resp.StatusCode)

	resp, body := s.post("/login", url.Values{
		"username_or_email": {"alice"},
		"password":          {"wrong-password"},
	})

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Contains(body, appErrors.MsgInvalidCredentials)

	resp, _ = s.get("/")
	s.Equal(http.StatusFound, resp.StatusCode)
}

func (s *RouterTestSuite) TestLogout_ShouldEndSession() {
	s.registerAndLogin("alice")

	resp, _ := s.get("/logout")
	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(middleware.LoginPath, resp.Header.Get("Location"))

	_, body := s.get("/login")
	s.Contains(body, "You have been logged out.")

	resp, _ = s.get("/")
	s.Equal(http.StatusFound, resp.StatusCode)
}

func (s *RouterTestSuite) TestCreateRecipe_ShouldRedirectToDetail() {
	s.registerAndLogin("alice")

	resp, _ := s.post("/recipes/new", url.Values{
		"title":             {"Shakshuka"},
		"instructions":      {"Simmer the sauce, crack in the eggs."},
		"ingredient_name_0": {"Eggs"},
		"ingredient_qty_0":  {"4"},
	})

	s.Require().Equal(http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	s.True(strings.HasPrefix(location, "/recipes/"), location)

	resp, body := s.get(location)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Shakshuka")
	s.Contains(body, "Recipe added successfully!")

	_, body = s.get("/my-recipes")
	s.Contains(body, "Shakshuka")
}

func (s *RouterTestSuite) TestCreateRecipe_WithoutTitle_ShouldKeepInput() {
	s.registerAndLogin("alice")

	resp, body := s.post("/recipes/new", url.Values{
		"instructions": {"Stir well."},
	})

	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.Contains(body, "Stir well.")
}

func (s *RouterTestSuite) TestForgotPassword_ShouldRedirectToLoginForUnknownEmail() {
	resp, _ := s.post("/forgot-password", url.Values{"email": {"nobody@example.com"}})

	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal(middleware.LoginPath, resp.Header.Get("Location"))
}

func (s *RouterTestSuite) TestResetPassword_WithUnknownToken_ShouldRedirectToForgotPassword() {
	resp, _ := s.get("/reset-password/not-a-token")

	s.Equal(http.StatusFound, resp.StatusCode)
	s.Equal("/forgot-password", resp.Header.Get("Location"))

	_, body := s.get("/forgot-password")
	s.Contains(body, "Invalid or expired password reset link.")
}
