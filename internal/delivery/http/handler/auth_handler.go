package handler

import (
	"fmt"
	"net/http"

	"recipe-manager/internal/logger"
	"recipe-manager/internal/middleware"
	"recipe-manager/internal/session"
	"recipe-manager/internal/usecase/user"
	appErrors "recipe-manager/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service *user.Service
}

func NewAuthHandler(service *user.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes mounts the pages reachable without a login. limit guards the
// credential posts.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	noCache := middleware.NoCacheMiddleware()

	router.GET("/register", h.RegisterForm)
	router.POST("/register", limit, h.Register)
	router.GET("/login", noCache, h.LoginForm)
	router.POST("/login", limit, noCache, h.Login)
	router.GET("/logout", h.Logout)
	router.GET("/forgot-password", noCache, h.ForgotPasswordForm)
	router.POST("/forgot-password", limit, noCache, h.ForgotPassword)
	router.GET("/reset-password/:token", noCache, h.ResetPasswordForm)
	router.POST("/reset-password/:token", limit, noCache, h.ResetPassword)
}

// RegisterProtectedRoutes mounts the account pages that need a login.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	noCache := middleware.NoCacheMiddleware()

	router.GET("/change-password", noCache, h.ChangePasswordForm)
	router.POST("/change-password", noCache, h.ChangePassword)
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{"Title": "Register"}, danger(msgBadForm))
		return
	}

	if _, err := h.service.Register(c.Request.Context(), &req); err != nil {
		render(c, statusFor(err), "register.html", gin.H{
			"Title": "Register",
			"Form":  gin.H{"Username": req.Username, "Email": req.Email},
		}, errorAlert(c, err))
		return
	}

	redirectWithFlash(c, middleware.LoginPath, session.FlashSuccess, "Registration successful! Please log in.")
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Log In"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"Title": "Log In"}, danger(msgBadForm))
		return
	}

	// a failed attempt must not leave an earlier login in place
	if err := session.ClearIdentity(c); err != nil {
		logger.Warn("Failed to clear session before login", zap.Error(err))
	}

	identity, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		render(c, statusFor(err), "login.html", gin.H{
			"Title":      "Log In",
			"Identifier": req.Identifier,
		}, errorAlert(c, err))
		return
	}

	if err := session.SetIdentity(c, identity.UserID, identity.Username); err != nil {
		render(c, http.StatusInternalServerError, "login.html", gin.H{"Title": "Log In"}, errorAlert(c, err))
		return
	}

	redirectWithFlash(c, "/", session.FlashSuccess, fmt.Sprintf("Welcome back, %s!", identity.Username))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, username, ok := session.Identity(c); ok {
		h.service.Logout(c.Request.Context(), &user.Identity{UserID: userID, Username: username})
	}
	if err := session.ClearIdentity(c); err != nil {
		logger.Warn("Failed to clear session on logout", zap.Error(err))
	}
	redirectWithFlash(c, middleware.LoginPath, session.FlashInfo, "You have been logged out.")
}

func (h *AuthHandler) ForgotPasswordForm(c *gin.Context) {
	render(c, http.StatusOK, "forgot_password.html", gin.H{"Title": "Forgot Password"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		render(c, http.StatusBadRequest, "forgot_password.html", gin.H{"Title": "Forgot Password"}, danger(msgBadForm))
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), &req); err != nil {
		render(c, statusFor(err), "forgot_password.html", gin.H{"Title": "Forgot Password"}, errorAlert(c, err))
		return
	}

	redirectWithFlash(c, middleware.LoginPath, session.FlashInfo, user.MsgForgotPasswordSent)
}

func (h *AuthHandler) ResetPasswordForm(c *gin.Context) {
	token := c.Param("token")
	if err := h.service.ValidateResetToken(c.Request.Context(), token); err != nil {
		h.resetFailed(c, err)
		return
	}
	render(c, http.StatusOK, "reset_password.html", gin.H{"Title": "Reset Password", "Token": token})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req user.ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		render(c, http.StatusBadRequest, "reset_password.html", gin.H{"Title": "Reset Password", "Token": token}, danger(msgBadForm))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), token, &req); err != nil {
		if appErrors.CodeOf(err) == appErrors.CodeValidation {
			render(c, http.StatusBadRequest, "reset_password.html", gin.H{"Title": "Reset Password", "Token": token}, errorAlert(c, err))
			return
		}
		h.resetFailed(c, err)
		return
	}

	redirectWithFlash(c, middleware.LoginPath, session.FlashSuccess,
		"Your password has been successfully reset. Please log in with your new password.")
}

// resetFailed sends the user back to request a new link.
func (h *AuthHandler) resetFailed(c *gin.Context, err error) {
	if appErrors.CodeOf(err) == appErrors.CodeInvalidToken {
		redirectWithFlash(c, "/forgot-password", session.FlashDanger, appErrors.MsgInvalidToken)
		return
	}
	alert := errorAlert(c, err)
	redirectWithFlash(c, "/forgot-password", alert.Category, alert.Message)
}

func (h *AuthHandler) ChangePasswordForm(c *gin.Context) {
	render(c, http.StatusOK, "change_password.html", gin.H{"Title": "Change Password"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req user.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		render(c, http.StatusBadRequest, "change_password.html", gin.H{"Title": "Change Password"}, danger(msgBadForm))
		return
	}

	userID, username := actorID(c)
	err := h.service.ChangePassword(c.Request.Context(), &user.Identity{UserID: userID, Username: username}, &req)
	switch {
	case err == nil:
		redirectWithFlash(c, "/", session.FlashSuccess, "Password changed successfully!")
	case appErrors.CodeOf(err) == appErrors.CodeUnauthorized:
		if clearErr := session.ClearIdentity(c); clearErr != nil {
			logger.Warn("Failed to clear session", zap.Error(clearErr))
		}
		redirectWithFlash(c, middleware.LoginPath, session.FlashDanger, appErrors.MessageOf(err))
	default:
		render(c, statusFor(err), "change_password.html", gin.H{"Title": "Change Password"}, errorAlert(c, err))
	}
}
