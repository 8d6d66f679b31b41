package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         string
	MongoDBURI   string
	MongoDBName  string
	ClerkJWKSURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	FrontendURL string
	Environment string
	LogLevel    string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnvWithDefault("PORT", "8080"),
		MongoDBURI:    os.Getenv("MONGODB_URI"),
		MongoDBName:   getEnvWithDefault("MONGODB_DB", "stayhub"),
		ClerkJWKSURL:  os.Getenv("CLERK_JWKS_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		FrontendURL:   getEnvWithDefault("FRONTEND_URL", "http://localhost:5173"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
		}
		cfg.RedisDB = n
	}

	ttlSeconds := 60
	if ttl := os.Getenv("CACHE_TTL_SECONDS"); ttl != "" {
		n, err := strconv.Atoi(ttl)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: %q", ttl)
		}
		ttlSeconds = n
	}
	cfg.CacheTTL = time.Duration(ttlSeconds) * time.Second

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.ClerkJWKSURL == "" {
		return nil, fmt.Errorf("CLERK_JWKS_URL is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
