package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	Environment    string
	AllowedOrigins []string

	StorageBackend      string // "memory", "redis", "firestore"
	StoragePrefix       string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	FirebaseProject     string
	FirestoreCollection string

	// Service account, as inline JSON or a file path. Empty means ambient credentials.
	FirebaseCredentialsJSON string
	FirebaseCredentialsPath string

	AuthMode        string // "header" or "firebase"
	DefaultLanguage string
	Timezone        string

	LogLevel  string
	LogFormat string

	MessageRateLimit int // messages per minute per user
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),

		StorageBackend:      getEnv("STORAGE_BACKEND", "memory"),
		StoragePrefix:       getEnv("STORAGE_PREFIX", "marketplace"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		FirebaseProject:     getEnv("FIREBASE_PROJECT_ID", ""),
		FirestoreCollection: getEnv("FIRESTORE_COLLECTION", "kv"),

		FirebaseCredentialsJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		AuthMode:        getEnv("AUTH_MODE", "header"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		Timezone:        getEnv("TIMEZONE", "Local"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		MessageRateLimit: getEnvAsInt("MESSAGE_RATE_LIMIT", 10),
	}

	return config, nil
}

// Location resolves the configured timezone used for day-based date checks.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
