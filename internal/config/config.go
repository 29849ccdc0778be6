package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ngmaloney/train-terminal/internal/database"
	"github.com/ngmaloney/train-terminal/internal/stations"
	"github.com/ngmaloney/train-terminal/internal/transportapi"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	// Transport API configuration
	TransportAPI TransportAPIConfig

	// Station directory configuration
	Stations StationsConfig

	// Database configuration
	Database DatabaseConfig

	// Server configuration, used by the HTTP API only
	Server ServerConfig

	// CORS configuration
	CORS CORSConfig
}

// TransportAPIConfig holds the live departures API credentials
type TransportAPIConfig struct {
	AppID         string
	AppKey        string
	BaseURL       string
	UseMock       bool // serve bundled fixtures instead of calling the API
	Timeout       time.Duration
	RatePerSecond float64
}

// StationsConfig holds where the station directory comes from
type StationsConfig struct {
	URL     string
	Offline bool // skip the download and use the bundled directory
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, production
	LogLevel    string // debug, info, warn, error
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Load loads configuration from environment variables, after reading a
// .env file if one exists. Call Validate once any flag overrides are applied.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	return &Config{
		TransportAPI: TransportAPIConfig{
			AppID:         getEnv("TRANSPORT_API_APP_ID", ""),
			AppKey:        getEnv("TRANSPORT_API_APP_KEY", ""),
			BaseURL:       getEnv("TRANSPORT_API_BASE_URL", transportapi.DefaultBaseURL),
			UseMock:       getEnvAsBool("USE_MOCK_API", false),
			Timeout:       time.Duration(getEnvAsInt("TRANSPORT_API_TIMEOUT_SECONDS", 10)) * time.Second,
			RatePerSecond: getEnvAsFloat("API_RATE_PER_SECOND", 2),
		},
		Stations: StationsConfig{
			URL:     getEnv("STATIONS_URL", stations.DefaultStationsURL),
			Offline: getEnvAsBool("STATIONS_OFFLINE", false),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", database.DBPath()),
		},
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !c.TransportAPI.UseMock {
		if c.TransportAPI.AppID == "" {
			return fmt.Errorf("TRANSPORT_API_APP_ID is required unless USE_MOCK_API is set")
		}
		if c.TransportAPI.AppKey == "" {
			return fmt.Errorf("TRANSPORT_API_APP_KEY is required unless USE_MOCK_API is set")
		}
	}

	if c.Database.Path == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}

	if _, err := logrus.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if c.TransportAPI.RatePerSecond < 0 {
		return fmt.Errorf("API_RATE_PER_SECOND must not be negative")
	}

	return nil
}

// StationsSource returns the URL to provision stations from, or "" when offline
func (c *Config) StationsSource() string {
	if c.Stations.Offline {
		return ""
	}
	return c.Stations.URL
}

// ClientOptions returns the Transport API client options
func (c *Config) ClientOptions() transportapi.Options {
	return transportapi.Options{
		AppID:         c.TransportAPI.AppID,
		AppKey:        c.TransportAPI.AppKey,
		BaseURL:       c.TransportAPI.BaseURL,
		Timeout:       c.TransportAPI.Timeout,
		RatePerSecond: c.TransportAPI.RatePerSecond,
	}
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logrus.Warnf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logrus.Warnf("Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		logrus.Warnf("Invalid boolean value for %s, using default: %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
