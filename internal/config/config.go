package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	RedisHost      string
	RedisPort      string
	SessionSecret  string
	GinMode        string
	MetadataAPIURL string
	MetadataAPIKey string
}

func Load() *Config {
	// A missing .env is fine; the real environment wins either way.
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "5001"),
		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "backlog"),
		DBPassword:     getEnv("DB_PASSWORD", "backlog"),
		DBName:         getEnv("DB_NAME", "game_backlog"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		MetadataAPIURL: getEnv("METADATA_API_URL", "https://www.giantbomb.com/api/search/"),
		MetadataAPIKey: getEnv("METADATA_API_KEY", ""),
	}
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
