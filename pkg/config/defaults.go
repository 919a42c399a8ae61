// Package config provides centralized default values for contentbridge
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err == nil {
			log.Println("Loaded configuration overrides from .env file")
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			return val
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if valStr := os.Getenv(key); valStr != "" {
		parts := strings.Split(valStr, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Contentful space
	SpaceID          string
	SpaceKey         string
	SpaceAPIURL      string
	SpaceEnvironment string

	// Serving mode: "live" pulls from the delivery API per request,
	// "store" serves from the local snapshot store populated by sync.
	ContentMode string

	// Content model
	TrackedContentTypes []string
	DefaultLocale       string
	PageIncludeDepth    int
	SyncIncludeDepth    int

	// Link tagging
	SiteHosts []string
	UTMSource string

	// Database
	DBPath                   string
	TursoEnabled             bool
	TursoDatabase            string
	TursoToken               string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int
	SlowQueryThreshold       time.Duration

	// Auth
	JWTSecret         string
	AdminPasswordHash string
	TokenLifetime     time.Duration
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("CB_SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("CB_SERVER_WRITE_TIMEOUT", 30*time.Second)
	ServerIdleTimeout = getEnvDuration("CB_SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Contentful space
	SpaceID = getEnvString("CB_SPACE_ID", "")
	SpaceKey = getEnvString("CB_SPACE_KEY", "")
	SpaceAPIURL = getEnvString("CB_SPACE_API", "https://cdn.contentful.com")
	SpaceEnvironment = getEnvString("CB_SPACE_ENVIRONMENT", "V0")

	ContentMode = getEnvString("CB_CONTENT_MODE", "store")

	// Content model
	TrackedContentTypes = getEnvList("CB_CONTENT_TYPES", []string{
		"pageGeneral", "pageVersatile", "pageHome", "connectHomepage",
	})
	DefaultLocale = getEnvString("CB_DEFAULT_LOCALE", "en-US")
	PageIncludeDepth = getEnvInt("CB_PAGE_INCLUDE_DEPTH", 5)
	SyncIncludeDepth = getEnvInt("CB_SYNC_INCLUDE_DEPTH", 10)

	// Link tagging
	SiteHosts = getEnvList("CB_SITE_HOSTS", []string{"www.example.org"})
	UTMSource = getEnvString("CB_UTM_SOURCE", SiteHosts[0])

	// Database
	DBPath = getEnvString("CB_DB_PATH", "db/contentbridge.db")
	TursoEnabled = getEnvBool("CB_TURSO_ENABLED", false)
	TursoDatabase = getEnvString("CB_TURSO_DATABASE", "")
	TursoToken = getEnvString("CB_TURSO_TOKEN", "")
	DBMaxOpenConns = getEnvInt("CB_DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("CB_DB_MAX_IDLE_CONNS", 5)
	DBConnMaxLifetimeMinutes = getEnvInt("CB_DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("CB_DB_CONN_MAX_IDLE_MINUTES", 10)
	SlowQueryThreshold = getEnvDuration("CB_SLOW_QUERY_THRESHOLD", 100*time.Millisecond)

	// Auth
	JWTSecret = getEnvString("CB_JWT_SECRET", "")
	AdminPasswordHash = getEnvString("CB_ADMIN_PASSWORD_HASH", "")
	TokenLifetime = getEnvDuration("CB_TOKEN_LIFETIME", 24*time.Hour)
}
