package lib

import (
	"os"
	"time"
)

// Config holds all application configuration, read from the environment
type Config struct {
	Port                     string
	Env                      string
	MongoURI                 string
	MongoDatabase            string
	JWTSecret                string
	JWTExpiry                time.Duration
	CORSOrigins              string
	GeminiAPIKey             string
	GeminiModel              string
	AllowReinviteAfterReject bool
}

var Cfg *Config

// LoadConfig reads configuration from environment variables and sets the
// global Cfg. Call godotenv.Load before this in main.
func LoadConfig() *Config {
	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "24h"))
	if err != nil {
		expiry = 24 * time.Hour
	}

	Cfg = &Config{
		Port:                     getEnv("PORT", "5000"),
		Env:                      getEnv("ENV", "development"),
		MongoURI:                 getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:            getEnv("MONGO_DB", "lms-buddy"),
		JWTSecret:                getEnv("JWT_SECRET", "fallback-secret-key"),
		JWTExpiry:                expiry,
		CORSOrigins:              getEnv("CORS_ORIGINS", "http://localhost:5173"),
		GeminiAPIKey:             getEnv("GEMINI_API_KEY", ""),
		GeminiModel:              getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		AllowReinviteAfterReject: getEnv("ALLOW_REINVITE_AFTER_REJECT", "false") == "true",
	}
	return Cfg
}

// getEnv gets an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
