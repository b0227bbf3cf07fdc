package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	JWTSecret      string
	JWTExpiry      string
	AllowedOrigins []string
	Redis          RedisConfig
	SMTP           SMTPConfig
	Cleanup        CleanupConfig
}

// RedisConfig holds Redis connection settings. URL takes precedence over
// Host/Port when set.
type RedisConfig struct {
	URL          string
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SMTPConfig holds the settings for outbound status-change notifications.
type SMTPConfig struct {
	Host          string
	Port          string
	Username      string
	Password      string
	FromEmail     string
	FromName      string
	ManagersEmail string
}

// CleanupConfig controls the resolved-issue retention loop.
type CleanupConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

func Load() *Config {
	// load .env variable
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI environment variable is not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173"
	}

	return &Config{
		Port:           port,
		MongoURI:       mongoURI,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      os.Getenv("JWT_EXPIRY"),
		AllowedOrigins: strings.Split(allowedOrigins, ","),
		Redis:          loadRedisConfig(),
		SMTP:           loadSMTPConfig(),
		Cleanup:        loadCleanupConfig(),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		Host:         envOrDefault("REDIS_HOST", "localhost"),
		Port:         envOrDefault("REDIS_PORT", "6379"),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           envInt("REDIS_DB", 0),
		PoolSize:     envInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func loadSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:          os.Getenv("SMTP_HOST"),
		Port:          envOrDefault("SMTP_PORT", "587"),
		Username:      os.Getenv("SMTP_USERNAME"),
		Password:      os.Getenv("SMTP_PASSWORD"),
		FromEmail:     envOrDefault("SMTP_FROM_EMAIL", "noreply@fleetops.local"),
		FromName:      envOrDefault("SMTP_FROM_NAME", "FleetOps"),
		ManagersEmail: os.Getenv("MANAGERS_EMAIL"),
	}
}

func loadCleanupConfig() CleanupConfig {
	return CleanupConfig{
		Interval:  envDuration("CLEANUP_INTERVAL", 24*time.Hour),
		Retention: envDuration("CLEANUP_RETENTION", 90*24*time.Hour),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value for %s: %v, using %d", key, err, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid value for %s: %v, using %v", key, err, fallback)
		return fallback
	}
	return d
}
