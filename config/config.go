package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/Vikesh2608/EagleReach/shared/utils"
)

// Config holds all configuration for the service
type Config struct {
	Environment string
	Service     ServiceConfig
	Logging     LoggingConfig
	CORS        CORSConfig
	Providers   ProviderConfig
	Cache       CacheConfig
	DB          DBConfig
	DemoMode    bool
	Debug       bool
}

// ServiceConfig holds service-specific configuration
type ServiceConfig struct {
	Name    string
	Port    string
	Host    string
	Timeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// CORSConfig holds the CORS origin allow-list
type CORSConfig struct {
	AllowedOrigins []string
}

// ProviderConfig holds upstream civic data provider configuration
type ProviderConfig struct {
	CensusBaseURL    string
	ZippopotamURL    string
	LegislatorsURL   string
	UseOpenStates    bool
	OpenStatesAPIKey string
	OpenStatesURL    string
}

// CacheConfig holds officials cache configuration
type CacheConfig struct {
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// DBConfig holds database configuration
type DBConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
}

// Default GitHub Pages deployment the frontend is served from
const (
	githubUsername = "vikesh2608"
	githubRepo     = "EagleReach"
)

// LoadConfig loads configuration from environment variables
func LoadConfig(serviceName string) *Config {
	env := utils.GetEnvOrDefault("ENVIRONMENT", "local")

	cacheTTL := time.Hour
	if v := utils.GetEnvOrDefault("CACHE_TTL_SECONDS", ""); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cacheTTL = time.Duration(secs) * time.Second
		}
	}

	redisDB := 0
	if v := utils.GetEnvOrDefault("REDIS_DB", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		Environment: env,
		Service: ServiceConfig{
			Name:    serviceName,
			Port:    utils.GetEnvOrDefault("PORT", "8000"),
			Host:    utils.GetEnvOrDefault("HOST", "0.0.0.0"),
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  utils.GetEnvOrDefault("LOG_LEVEL", getDefaultLogLevel(env)),
			Format: utils.GetEnvOrDefault("LOG_FORMAT", getDefaultLogFormat(env)),
		},
		CORS: CORSConfig{
			AllowedOrigins: loadAllowedOrigins(),
		},
		Providers: ProviderConfig{
			CensusBaseURL:    utils.GetEnvOrDefault("CENSUS_BASE_URL", "https://geocoding.geo.census.gov"),
			ZippopotamURL:    utils.GetEnvOrDefault("ZIPPOPOTAM_URL", "https://api.zippopotam.us"),
			LegislatorsURL:   utils.GetEnvOrDefault("LEGISLATORS_URL", "https://unitedstates.github.io/congress-legislators/legislators-current.json"),
			UseOpenStates:    strings.EqualFold(utils.GetEnvOrDefault("USE_OPENSTATES", "false"), "true"),
			OpenStatesAPIKey: utils.GetEnvOrDefault("OPENSTATES_API_KEY", ""),
			OpenStatesURL:    utils.GetEnvOrDefault("OPENSTATES_URL", "https://v3.openstates.org"),
		},
		Cache: CacheConfig{
			TTL:           cacheTTL,
			RedisAddr:     utils.GetEnvOrDefault("REDIS_ADDR", ""),
			RedisPassword: utils.GetEnvOrDefault("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		DB: DBConfig{
			Host:     utils.GetEnvOrDefault("DB_HOST", "localhost"),
			Port:     utils.GetEnvOrDefault("DB_PORT", "5432"),
			Username: utils.GetEnvOrDefault("DB_USERNAME", "postgres"),
			Password: utils.GetEnvOrDefault("DB_PASSWORD", ""),
			Database: utils.GetEnvOrDefault("DB_NAME", "eaglereach"),
			SSLMode:  utils.GetEnvOrDefault("DB_SSLMODE", "require"),
		},
		DemoMode: strings.EqualFold(utils.GetEnvOrDefault("DEMO_MODE", "false"), "true"),
		Debug:    strings.EqualFold(utils.GetEnvOrDefault("DEBUG", "false"), "true"),
	}
}

// loadAllowedOrigins builds the CORS allow-list from ALLOWED_ORIGINS,
// falling back to local development hosts and the GitHub Pages frontend
func loadAllowedOrigins() []string {
	if raw := utils.GetEnvOrDefault("ALLOWED_ORIGINS", ""); raw != "" {
		var origins []string
		for _, o := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		if len(origins) > 0 {
			return origins
		}
	}

	return []string{
		"http://localhost",
		"http://127.0.0.1",
		"http://localhost:5500",
		"https://" + githubUsername + ".github.io",
		"https://" + githubUsername + ".github.io/" + githubRepo + "/",
	}
}

func getDefaultLogLevel(env string) string {
	if env == "production" {
		return "info"
	}
	return "debug"
}

func getDefaultLogFormat(env string) string {
	if env == "production" {
		return "json"
	}
	return "text"
}
