package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppEnv            string
	AppPort           string
	AllowedOrigins    string
	NatsURL           string
	CacheDriver       string
	CachePath         string
	CacheDBHost       string
	CacheDBPort       string
	CacheDBUser       string
	CacheDBPassword   string
	CacheDBName       string
	CacheMaxIdleConns int
	CacheMaxOpenConns int
	JWTSecret         string
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("%s not set, defaulting to %s", key, defaultValue)
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Invalid integer value for %s, defaulting to %d", key, defaultValue)
	}
	return defaultValue
}

func Load() Config {
	log.Println("Loading configuration...")

	return Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		AppPort:           getEnv("APP_PORT", "8080"),
		AllowedOrigins:    getEnv("ALLOWED_ORIGINS", "*"),
		NatsURL:           getEnv("NATS_URL", "nats://localhost:4222"),
		CacheDriver:       getEnv("CACHE_DRIVER", "sqlite"),
		CachePath:         getEnv("CACHE_PATH", "neuralife-cache.db"),
		CacheDBHost:       getEnv("CACHE_DB_HOST", "localhost"),
		CacheDBPort:       getEnv("CACHE_DB_PORT", "5432"),
		CacheDBUser:       getEnv("CACHE_DB_USER", "neuralife"),
		CacheDBPassword:   getEnv("CACHE_DB_PASSWORD", "neuralife"),
		CacheDBName:       getEnv("CACHE_DB_NAME", "neuralife"),
		CacheMaxIdleConns: getEnvAsInt("CACHE_MAX_IDLE_CONNS", 10),
		CacheMaxOpenConns: getEnvAsInt("CACHE_MAX_OPEN_CONNS", 100),
		JWTSecret:         getEnv("JWT_SECRET", "your-super-secret-key-change-this-in-production"),
	}
}
