package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Storage   StorageConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Notify    NotifyConfig
	Seed      SeedConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
	BaseURL     string
}

type DatabaseConfig struct {
	Driver     string // sqlite or postgres
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
}

type SessionConfig struct {
	Secret     string
	CookieName string
	Secure     bool
	MaxAge     int
}

type StorageConfig struct {
	UploadDir      string
	MaxUploadBytes int64
}

type AuthConfig struct {
	ResetTokenTTL time.Duration
	BcryptCost    int
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
	AuthRPS      float64 // Requests per second for login, register and password reset posts
	AuthBurst    int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type NotifyConfig struct {
	Driver string // log or mqtt
	MQTT   MQTTConfig
}

type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      int
}

type SeedConfig struct {
	DefaultData bool
}

func setDefaults() {
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("BASE_URL", "http://localhost:8080")

	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_SQLITE_PATH", "recipes.db")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")

	viper.SetDefault("SESSION_COOKIE_NAME", "recipe_session")
	viper.SetDefault("SESSION_MAX_AGE", 7*24*3600)

	viper.SetDefault("UPLOAD_DIR", "static/uploads")
	viper.SetDefault("UPLOAD_MAX_BYTES", 16<<20)

	viper.SetDefault("RESET_TOKEN_TTL", "5m")
	viper.SetDefault("BCRYPT_COST", 10)

	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)
	viper.SetDefault("RATE_LIMIT_AUTH_RPS", 1)
	viper.SetDefault("RATE_LIMIT_AUTH_BURST", 5)

	viper.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST"})
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type"})
	viper.SetDefault("CORS_MAX_AGE", 12*3600)

	viper.SetDefault("NOTIFY_DRIVER", "log")
	viper.SetDefault("MQTT_CLIENT_ID", "recipe-manager")
	viper.SetDefault("MQTT_TOPIC", "recipes/notifications/password-reset")
	viper.SetDefault("MQTT_QOS", 1)

	viper.SetDefault("SEED_DEFAULT_DATA", true)
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
			BaseURL:     viper.GetString("BASE_URL"),
		},
		Database: DatabaseConfig{
			Driver:     viper.GetString("DB_DRIVER"),
			SQLitePath: viper.GetString("DB_SQLITE_PATH"),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			DBName:     viper.GetString("DB_NAME"),
			SSLMode:    viper.GetString("DB_SSLMODE"),
		},
		Session: SessionConfig{
			Secret:     viper.GetString("SESSION_SECRET"),
			CookieName: viper.GetString("SESSION_COOKIE_NAME"),
			Secure:     viper.GetBool("SESSION_SECURE"),
			MaxAge:     viper.GetInt("SESSION_MAX_AGE"),
		},
		Storage: StorageConfig{
			UploadDir:      viper.GetString("UPLOAD_DIR"),
			MaxUploadBytes: viper.GetInt64("UPLOAD_MAX_BYTES"),
		},
		Auth: AuthConfig{
			ResetTokenTTL: viper.GetDuration("RESET_TOKEN_TTL"),
			BcryptCost:    viper.GetInt("BCRYPT_COST"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
			AuthRPS:      viper.GetFloat64("RATE_LIMIT_AUTH_RPS"),
			AuthBurst:    viper.GetInt("RATE_LIMIT_AUTH_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		Notify: NotifyConfig{
			Driver: viper.GetString("NOTIFY_DRIVER"),
			MQTT: MQTTConfig{
				Broker:   viper.GetString("MQTT_BROKER"),
				ClientID: viper.GetString("MQTT_CLIENT_ID"),
				Username: viper.GetString("MQTT_USERNAME"),
				Password: viper.GetString("MQTT_PASSWORD"),
				Topic:    viper.GetString("MQTT_TOPIC"),
				QoS:      viper.GetInt("MQTT_QOS"),
			},
		},
		Seed: SeedConfig{
			DefaultData: viper.GetBool("SEED_DEFAULT_DATA"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
