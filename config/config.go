package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPageLimit    = 3
	MaxPageLimit        = 100
	DefaultHistoryLimit = 50
)

type Config struct {
	Port string

	MongoURI     string
	MongoDB      string
	StoreBackend string // mongo | memory

	JWTSecret     string
	JWTExpiration time.Duration
	BcryptCost    int
	Production    bool

	FrontendURL string

	StorageBackend string // local | s3
	UploadDir      string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string

	NATSURL          string
	ChatHistoryLimit int

	LogLevel string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func LoadConfig() Config {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment variables")
	}

	return Config{
		Port: getEnv("PORT", "3000"),

		MongoURI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGODB_DB_NAME", "blog"),
		StoreBackend: getEnv("STORE_BACKEND", "mongo"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: getEnvDuration("JWT_EXPIRATION", time.Hour),
		BcryptCost:    getEnvInt("BCRYPT_COST", 10),
		Production:    getEnv("APP_ENV", "development") == "production",

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		StorageBackend: getEnv("STORAGE_BACKEND", "local"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),

		NATSURL:          getEnv("NATS_URL", ""),
		ChatHistoryLimit: getEnvInt("CHAT_HISTORY_LIMIT", DefaultHistoryLimit),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StoreBackend {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.StorageBackend {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.ChatHistoryLimit <= 0 {
		return fmt.Errorf("CHAT_HISTORY_LIMIT must be positive, got %d", c.ChatHistoryLimit)
	}
	return nil
}
