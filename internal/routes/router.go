package routes

import (
	"html/template"
	"io/fs"
	"net/http"
	"recipe-manager/internal/config"
	"recipe-manager/internal/delivery/http/handler"
	"recipe-manager/internal/infrastructure/database"
	"recipe-manager/internal/logger"
	"recipe-manager/internal/media"
	"recipe-manager/internal/middleware"
	"recipe-manager/internal/notify"
	"recipe-manager/internal/session"
	"recipe-manager/internal/storage"
	"recipe-manager/internal/usecase/recipe"
	"recipe-manager/internal/usecase/user"
	"recipe-manager/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	cfg *config.Config,
	db *database.DB,
	images *storage.FileStore,
	notifier notify.Notifier,
	systemUserID int64,
) (*gin.Engine, error) {
	switch cfg.Server.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	router := gin.New()

	tmpl, err := template.New("").ParseFS(web.FS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	// Add middleware in order: recovery, request ID, logging, metrics, security headers, CORS,
	// request size limit, general rate limit, session
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.UploadRequestLimit(cfg.Storage.MaxUploadBytes)))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}
	router.StaticFS("/static", http.FS(staticFS))
	router.Static("/uploads", images.Dir())

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userRepository := database.NewUserRepository(db)
	resetTokenRepository := database.NewResetTokenRepository(db)
	userService := user.NewService(userRepository, resetTokenRepository, notifier, cfg)
	authHandler := handler.NewAuthHandler(userService)

	recipeRepository := database.NewRecipeRepository(db)
	categoryRepository := database.NewCategoryRepository(db)
	recipeService := recipe.NewService(recipeRepository, categoryRepository, images, media.NewNormalizer(), systemUserID)
	recipeHandler := handler.NewRecipeHandler(recipeService)

	pages := router.Group("")
	pages.Use(session.Middleware(&cfg.Session))
	{
		authHandler.RegisterRoutes(pages, middleware.RateLimitMiddleware(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst))

		protected := pages.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			recipeHandler.RegisterRoutes(protected)
			authHandler.RegisterProtectedRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router, nil
}
