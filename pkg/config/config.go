package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, sourced from the environment.
type Config struct {
	Port                    string
	Env                     string
	LogLevel                string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	RedisAddr               string
	CloudinaryCloudName     string
	AdminAPIKey             string
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "seejoshsphotos"),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		CloudinaryCloudName:     getEnv("CLOUDINARY_CLOUD_NAME", "seejoshsphotos"),
		AdminAPIKey:             getEnv("ADMIN_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
