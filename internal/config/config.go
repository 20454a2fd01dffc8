package config

import (
	"fmt"
	"net/url"
	"time"

	"workflowhub/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	ServerPort     string
	JWTSecret      string
	JWTExpiry      time.Duration
	LogDevelopment bool
	AuditQueueSize int

	// EnvFileErr is why .env could not be read, nil when it was loaded.
	EnvFileErr error
}

// Load reads .env when present and then the process environment. It does not
// log: the logger is configured from the result, so LogSources reports where
// the values came from once it is ready.
func Load() *Config {
	envFileErr := godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "workflow")
	v.SetDefault("DB_PASSWORD", "workflow")
	v.SetDefault("DB_NAME", "workflowhub")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("JWT_SECRET", "supersecretkey")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("LOG_DEVELOPMENT", false)
	v.SetDefault("AUDIT_QUEUE_SIZE", 256)

	return &Config{
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		ServerPort:     v.GetString("SERVER_PORT"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiry:      time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		LogDevelopment: v.GetBool("LOG_DEVELOPMENT"),
		AuditQueueSize: v.GetInt("AUDIT_QUEUE_SIZE"),
		EnvFileErr:     envFileErr,
	}
}

func (c *Config) LogSources() {
	if c.EnvFileErr != nil {
		logger.Warn("No .env file found, using system environment variables", zap.Error(c.EnvFileErr))
	}
}

// DSN is the key/value connection string used by gorm's postgres driver.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// DatabaseURL is the URL form of the connection string, used by migrations.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}
