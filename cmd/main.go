package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"recipe-manager/internal/config"
	"recipe-manager/internal/infrastructure/database"
	"recipe-manager/internal/logger"
	"recipe-manager/internal/notify"
	"recipe-manager/internal/routes"
	"recipe-manager/internal/storage"
	"recipe-manager/pkg/mqtt"
	"recipe-manager/pkg/utils"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("database_driver", cfg.Database.Driver),
	)

	if cfg.IsProduction() && cfg.Session.Secret == "" {
		logger.Fatal("Session secret is missing. Please set SESSION_SECRET environment variable.")
	}
	utils.SetPasswordCost(cfg.Auth.BcryptCost)

	db, err := database.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	systemUserID, err := db.EnsureSystemUser()
	if err != nil {
		logger.Fatal("Failed to ensure system user", zap.Error(err))
	}
	if cfg.Seed.DefaultData {
		if err := db.Seed(systemUserID); err != nil {
			logger.Fatal("Failed to seed default data", zap.Error(err))
		}
	}

	images, err := storage.NewFileStore(cfg.Storage.UploadDir, cfg.Storage.MaxUploadBytes)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	notifier, closeNotifier := newNotifier(&cfg.Notify)
	defer closeNotifier()

	router, err := routes.SetupRoutes(cfg, db, images, notifier, systemUserID)
	if err != nil {
		logger.Fatal("Failed to set up routes", zap.Error(err))
	}

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}

// newNotifier picks the reset-link delivery. An unreachable broker falls
// back to logging so that password resets keep working.
func newNotifier(cfg *config.NotifyConfig) (notify.Notifier, func()) {
	if cfg.Driver != "mqtt" {
		return notify.NewLogNotifier(), func() {}
	}

	client := mqtt.NewClient(&mqtt.Config{
		Broker:               cfg.MQTT.Broker,
		ClientID:             cfg.MQTT.ClientID,
		Username:             cfg.MQTT.Username,
		Password:             cfg.MQTT.Password,
		CleanSession:         true,
		KeepAlive:            60,
		ConnectTimeout:       10,
		AutoReconnect:        true,
		MaxReconnectInterval: time.Minute,
	})
	if err := client.Connect(); err != nil {
		logger.Error("Failed to connect to MQTT broker, logging reset links instead",
			zap.String("broker", cfg.MQTT.Broker),
			zap.Error(err),
		)
		return notify.NewLogNotifier(), func() {}
	}

	return notify.NewMQTTNotifier(client, cfg.MQTT.Topic, byte(cfg.MQTT.QoS)), client.Disconnect
}
