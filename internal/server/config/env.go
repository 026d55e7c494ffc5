package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from environment variables. A .env file in the
// working directory is loaded first when present; real environment variables
// win over the file.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddr = getEnv("ENDPOINT_ADDR", config.EndpointAddr)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)
	config.AccessTokenValidityDuration = getEnvAsMinutes("ACCESS_TOKEN_EXPIRE_MINUTES", config.AccessTokenValidityDuration)
	config.CookieName = getEnv("ACCESS_COOKIE_NAME", config.CookieName)
	config.BearerPrefix = getEnv("AUTH_HEADER_PREFIX", config.BearerPrefix)
	config.CORSOrigins = getEnv("CORS_ORIGINS", config.CORSOrigins)
	config.GinMode = getEnv("GIN_MODE", config.GinMode)
}

// getEnv returns the environment variable value or defaultValue if unset or
// empty.
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsMinutes reads an integer number of minutes from the environment.
func getEnvAsMinutes(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return time.Duration(value) * time.Minute
}
