package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI       string
	MongoDB        string
	HTTPPort       string
	AdminSecret    string
	AdminAuthMode  string // "secret" or "jwt"
	JWTSecret      string
	StorageDriver  string // "disk" or "s3"
	UploadsDir     string
	NATSURL        string
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
	RedisAddress   string
	SMTPHost       string
	SMTPPort       int
	SMTPEmail      string
	SMTPPassword   string
}

func Load() (*Config, error) {
	// .env is optional; environment variables are the primary source.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env, relying on environment variables")
	}

	minioUseSSL, err := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	if err != nil {
		log.Printf("Warning: invalid MINIO_USE_SSL value, defaulting to false. Error: %v", err)
		minioUseSSL = false
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		log.Printf("Warning: invalid SMTP_PORT value, defaulting to 587. Error: %v", err)
		smtpPort = 587
	}

	cfg := &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "campus_marketplace"),
		HTTPPort:       getEnv("HTTP_PORT", "5000"),
		AdminSecret:    getEnv("ADMIN_SECRET", ""),
		AdminAuthMode:  getEnv("ADMIN_AUTH_MODE", "secret"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		StorageDriver:  getEnv("STORAGE_DRIVER", "disk"),
		UploadsDir:     getEnv("UPLOADS_DIR", "uploads"),
		NATSURL:        getEnv("NATS_URL", "nats://localhost:4222"),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "product-photos"),
		MinIOUseSSL:    minioUseSSL,
		RedisAddress:   getEnv("REDIS_ADDRESS", "localhost:6379"),
		SMTPHost:       getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       smtpPort,
		SMTPEmail:      getEnv("SMTP_EMAIL", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
	}

	if cfg.AdminSecret == "" && cfg.AdminAuthMode == "secret" {
		log.Fatal("FATAL: ADMIN_SECRET is not set. Deletion would be unprotected.")
	}
	if cfg.AdminAuthMode == "jwt" && cfg.JWTSecret == "" {
		log.Fatal("FATAL: ADMIN_AUTH_MODE=jwt requires JWT_SECRET to be set.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
