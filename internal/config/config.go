package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session storage kinds
const (
	SessionStoreMemory = "memory"
	SessionStoreMySQL  = "mysql"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Backend  BackendConfig
	Session  SessionConfig
	Database DatabaseConfig
	Cookie   CookieConfig
}

// BackendConfig points at the collection REST API
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds session store configuration
type SessionConfig struct {
	Secret    string
	TTL       time.Duration
	Store     string
	PurgeSpec string
}

// DatabaseConfig holds database configuration (session store "mysql")
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite string
	Domain   string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Backend:  loadBackendConfig(appMode),
		Session:  loadSessionConfig(appMode),
		Database: loadDatabaseConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	// Set global config
	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s, BACKEND: %s, SESSIONS: %s]",
		appMode, config.Backend.BaseURL, config.Session.Store)
	return config, nil
}

func (c *Config) validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.Session.Store != SessionStoreMemory && c.Session.Store != SessionStoreMySQL {
		return fmt.Errorf("invalid SESSION_STORE: '%s' (must be '%s' or '%s')", c.Session.Store, SessionStoreMemory, SessionStoreMySQL)
	}
	if c.IsProd() && c.Session.Secret == defaultSessionSecret {
		return fmt.Errorf("PROD_SESSION_SECRET must be set in production")
	}
	return nil
}

func prefixFor(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadBackendConfig loads backend config based on mode
func loadBackendConfig(mode string) BackendConfig {
	prefix := prefixFor(mode)
	timeout, _ := strconv.Atoi(getEnv("BACKEND_TIMEOUT_SECONDS", "15"))
	if timeout <= 0 {
		timeout = 15
	}

	return BackendConfig{
		BaseURL: strings.TrimRight(getEnv(prefix+"BACKEND_BASE_URL", getEnv("BACKEND_BASE_URL", "http://localhost:8080/api")), "/"),
		Timeout: time.Duration(timeout) * time.Second,
	}
}

const defaultSessionSecret = "default_session_secret"

// loadSessionConfig loads session config based on mode
func loadSessionConfig(mode string) SessionConfig {
	prefix := prefixFor(mode)
	hours, _ := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "12"))
	if hours <= 0 {
		hours = 12
	}

	return SessionConfig{
		Secret:    getEnv(prefix+"SESSION_SECRET", defaultSessionSecret),
		TTL:       time.Duration(hours) * time.Hour,
		Store:     strings.ToLower(strings.TrimSpace(getEnv("SESSION_STORE", SessionStoreMemory))),
		PurgeSpec: getEnv("SESSION_PURGE_SPEC", "*/15 * * * *"),
	}
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := prefixFor(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "susu_dashboard"),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := prefixFor(mode)

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", strconv.FormatBool(mode == "prod")))

	return CookieConfig{
		Name:     getEnv("COOKIE_NAME", "susu_session"),
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// UsesDatabase reports whether sessions live in MySQL
func (c *Config) UsesDatabase() bool {
	return c.Session.Store == SessionStoreMySQL
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:" + c.Port
	}
	return origins
}
