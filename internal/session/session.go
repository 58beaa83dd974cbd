package session

import (
	"crypto/rand"
	"encoding/gob"
	"net/http"
	"recipe-manager/internal/config"
	"recipe-manager/internal/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	DefaultCookieName = "recipe_session"

	userIDKey   = "user_id"
	usernameKey = "username"

	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// Middleware installs a signed cookie session store. Without a configured
// secret a random key is used, so sessions do not survive a restart.
func Middleware(cfg *config.SessionConfig) gin.HandlerFunc {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			logger.Fatal("Failed to generate session key", zap.Error(err))
		}
		logger.Warn("SESSION_SECRET is not set, using a temporary key")
	}

	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	name := cfg.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	return sessions.Sessions(name, store)
}

func SetIdentity(c *gin.Context, userID int64, username string) error {
	s := sessions.Default(c)
	s.Set(userIDKey, userID)
	s.Set(usernameKey, username)
	return s.Save()
}

// ClearIdentity removes the login keys and leaves the rest of the session,
// pending flashes included, in place.
func ClearIdentity(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(userIDKey)
	s.Delete(usernameKey)
	return s.Save()
}

func Identity(c *gin.Context) (int64, string, bool) {
	s := sessions.Default(c)
	userID, ok := s.Get(userIDKey).(int64)
	if !ok || userID == 0 {
		return 0, "", false
	}
	username, _ := s.Get(usernameKey).(string)
	return userID, username, true
}

func AddFlash(c *gin.Context, category, message string) {
	s := sessions.Default(c)
	s.AddFlash(Flash{Category: category, Message: message})
	save(c, s)
}

// Flashes drains the pending messages.
func Flashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	save(c, s)

	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}

func save(c *gin.Context, s sessions.Session) {
	if err := s.Save(); err != nil {
		logger.Warn("Failed to save session",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
}
