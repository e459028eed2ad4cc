package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// TokenConfig holds everything the token service needs to mint and
// verify tokens. Loaded once at startup; read-only afterwards.
type TokenConfig struct {
	Key                  string
	Issuer               string
	Audience             string
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type StorageConfig struct {
	Bucket          string
	CredentialsFile string
}

type Config struct {
	Mongo          MongoConfig
	Token          TokenConfig
	Storage        StorageConfig
	AllowedOrigins []string
}

// Load reads the whole configuration from the environment.
// Defaults: issuer/audience "TodoApi", access token 3600s, refresh token 7 days.
func Load() Config {
	return Config{
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGODB_URI"),
			Database: os.Getenv("DATABASE_NAME"),
		},
		Token:          LoadTokenConfig(),
		Storage:        LoadStorageConfig(),
		AllowedOrigins: splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
	}
}

func LoadTokenConfig() TokenConfig {
	key := os.Getenv("JWT_KEY")
	if key == "" {
		log.Println("WARNING: JWT_KEY is not set, tokens will be signed with an empty key")
	}
	return TokenConfig{
		Key:                  key,
		Issuer:               getenvDefault("JWT_ISSUER", "TodoApi"),
		Audience:             getenvDefault("JWT_AUDIENCE", "TodoApi"),
		AccessTokenLifetime:  time.Duration(parseIntDefault(os.Getenv("ACCESS_TOKEN_LIFETIME_IN_SECONDS"), 3600)) * time.Second,
		RefreshTokenLifetime: time.Duration(parseIntDefault(os.Getenv("REFRESH_TOKEN_LIFETIME_IN_DAYS"), 7)) * 24 * time.Hour,
	}
}

func LoadStorageConfig() StorageConfig {
	return StorageConfig{
		Bucket:          os.Getenv("GCS_BUCKET"),
		CredentialsFile: os.Getenv("CREDENTIALS_FILE_LOCATION"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntDefault(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
