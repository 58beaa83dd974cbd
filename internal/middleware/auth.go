package middleware

import (
	"net/http"
	"recipe-manager/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "userID"
	UsernameKey = "username"

	LoginPath        = "/login"
	MsgLoginRequired = "You must be logged in to access this page."
)

// AuthMiddleware lets the request through only with a logged in session and
// exposes the identity on the context. Anyone else is sent to the login page.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, username, ok := session.Identity(c)
		if !ok {
			session.AddFlash(c, session.FlashDanger, MsgLoginRequired)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UsernameKey, username)

		c.Next()
	}
}

// CurrentUser returns the identity set by AuthMiddleware.
func CurrentUser(c *gin.Context) (int64, string, bool) {
	userID, ok := c.Get(UserIDKey)
	if !ok {
		return 0, "", false
	}
	id, ok := userID.(int64)
	if !ok {
		return 0, "", false
	}
	return id, c.GetString(UsernameKey), true
}
