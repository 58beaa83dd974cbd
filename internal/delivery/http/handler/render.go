package handler

import (
	"net/http"
	"net/url"
	"recipe-manager/internal/logger"
	"recipe-manager/internal/middleware"
	"recipe-manager/internal/session"
	appErrors "recipe-manager/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// render draws a page with the logged in username and every pending flash.
// alerts are shown on this page only and never stored in the session.
func render(c *gin.Context, status int, name string, data gin.H, alerts ...session.Flash) {
	if data == nil {
		data = gin.H{}
	}
	if _, username, ok := session.Identity(c); ok {
		data["Username"] = username
	}
	data["Flashes"] = append(session.Flashes(c), alerts...)
	c.HTML(status, name, data)
}

func redirectWithFlash(c *gin.Context, location, category, message string) {
	session.AddFlash(c, category, message)
	c.Redirect(http.StatusFound, location)
}

func flashWarnings(c *gin.Context, warnings []string) {
	for _, w := range warnings {
		session.AddFlash(c, session.FlashWarning, w)
	}
}

func danger(message string) session.Flash {
	return session.Flash{Category: session.FlashDanger, Message: message}
}

// errorAlert turns a service error into a user-facing alert. Storage
// failures are logged in full and shown with a generic message.
func errorAlert(c *gin.Context, err error) session.Flash {
	if appErrors.CodeOf(err) == appErrors.CodeStorage || appErrors.CodeOf(err) == "" {
		logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		return danger(appErrors.MsgStorage)
	}
	return danger(appErrors.MessageOf(err))
}

// backTo returns the referring page when it is on this site, else fallback.
func backTo(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || ref.Path == "" || ref.Path[0] != '/' {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return fallback
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

func actorID(c *gin.Context) (int64, string) {
	userID, username, _ := middleware.CurrentUser(c)
	return userID, username
}
