package config

import (
	"testing"
	"time"

	"github.com/ngmaloney/train-terminal/internal/stations"
	"github.com/ngmaloney/train-terminal/internal/transportapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"TRANSPORT_API_APP_ID", "TRANSPORT_API_APP_KEY", "TRANSPORT_API_BASE_URL", "USE_MOCK_API",
		"STATIONS_URL", "STATIONS_OFFLINE", "DB_PATH", "PORT", "ENVIRONMENT", "LOG_LEVEL",
		"CORS_ALLOWED_ORIGINS", "API_RATE_PER_SECOND", "TRANSPORT_API_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, transportapi.DefaultBaseURL, cfg.TransportAPI.BaseURL)
	assert.Equal(t, stations.DefaultStationsURL, cfg.StationsSource())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.TransportAPI.Timeout)
	assert.Equal(t, 2.0, cfg.TransportAPI.RatePerSecond)
	assert.False(t, cfg.IsProduction())

	assert.ErrorContains(t, cfg.Validate(), "TRANSPORT_API_APP_ID")
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TRANSPORT_API_APP_ID", "abc")
	t.Setenv("TRANSPORT_API_APP_KEY", "xyz")
	t.Setenv("STATIONS_OFFLINE", "true")
	t.Setenv("DB_PATH", "/tmp/trains.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://trains.example ,")
	t.Setenv("API_RATE_PER_SECOND", "not-a-number")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "", cfg.StationsSource())
	assert.Equal(t, "/tmp/trains.db", cfg.Database.Path)
	assert.Equal(t, []string{"http://localhost:3000", "https://trains.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2.0, cfg.TransportAPI.RatePerSecond)
	assert.True(t, cfg.IsProduction())

	opts := cfg.ClientOptions()
	assert.Equal(t, "abc", opts.AppID)
	assert.Equal(t, "xyz", opts.AppKey)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			TransportAPI: TransportAPIConfig{UseMock: true},
			Database:     DatabaseConfig{Path: "data/test.db"},
			Server:       ServerConfig{LogLevel: "info"},
		}
	}

	assert.NoError(t, base().Validate(), "mock mode needs no credentials")

	cfg := base()
	cfg.TransportAPI.UseMock = false
	cfg.TransportAPI.AppID = "id"
	assert.ErrorContains(t, cfg.Validate(), "TRANSPORT_API_APP_KEY")

	cfg = base()
	cfg.Server.LogLevel = "loud"
	assert.ErrorContains(t, cfg.Validate(), "LOG_LEVEL")

	cfg = base()
	cfg.Database.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.TransportAPI.RatePerSecond = -1
	assert.Error(t, cfg.Validate())
}
