package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment represents the current runtime environment.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// Storage backends accepted by STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

// Config holds everything the API and the CLI tools read from the environment.
type Config struct {
	Env     Environment
	Host    string
	Port    string
	LogMode string

	// Origins allowed to call the API from a browser (Expo web, dashboards).
	CORSOrigins []string

	// Key-value store
	StoreBackend   string
	DBURL          string
	SQLitePath     string
	RedisURL       string
	RedisKeyPrefix string
	MongoURI       string
	MongoDatabase  string

	// Progress photo uploads. Empty bucket disables the upload endpoint.
	S3Bucket          string
	AWSRegion         string
	PresignTTLMinutes int

	// Single-user auth
	AuthUsername     string
	AuthPasswordHash string
	AuthToken        string

	// Timezone used to bucket progress photos into weeks.
	Timezone string
}

// GetEnvironment reads ENV, defaulting to development.
func GetEnvironment() Environment {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Load reads an optional .env file, then the process environment, and
// validates the result.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Env:               GetEnvironment(),
		Host:              getEnv("SERVER_HOST", "localhost"),
		Port:              getEnv("SERVER_PORT", "3000"),
		LogMode:           getEnv("LOG_MODE", "dev"),
		CORSOrigins:       getEnvList("CORS_ALLOWED_ORIGINS", "http://localhost:8081,http://localhost:19006"),
		StoreBackend:      strings.ToLower(getEnv("STORE_BACKEND", BackendSQLite)),
		DBURL:             os.Getenv("DB_URL"),
		SQLitePath:        getEnv("SQLITE_PATH", "body-progress.db"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisKeyPrefix:    getEnv("REDIS_KEY_PREFIX", "body-progress:"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "body_progress"),
		S3Bucket:          os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		PresignTTLMinutes: getEnvInt("PHOTO_URL_TTL_MINUTES", 60),
		AuthUsername:      os.Getenv("AUTH_USERNAME"),
		AuthPasswordHash:  os.Getenv("AUTH_PASSWORD_HASH"),
		AuthToken:         os.Getenv("AUTH_TOKEN"),
		Timezone:          getEnv("TZ_NAME", "UTC"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// PhotosEnabled reports whether a bucket is configured for photo uploads.
func (c *Config) PhotosEnabled() bool {
	return c.S3Bucket != ""
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func getEnvInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(name, def string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(name, def), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
