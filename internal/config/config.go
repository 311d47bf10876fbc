package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Pipeline PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// PipelineConfig holds residual pipeline tunables
type PipelineConfig struct {
	// HighRevenueThreshold is the net revenue above which a merchant on
	// the flagged processor resolves to the partner rule
	HighRevenueThreshold float64
	FlaggedProcessor     string
	CoOwnerIndicator     string
	// ConcentrationTopN is how many merchants count toward the revenue
	// concentration share
	ConcentrationTopN int
	ReportCacheTTL    time.Duration
	// MetricsRefreshInterval drives the background report warm-up job
	MetricsRefreshInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "residualhub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Pipeline: PipelineConfig{
			HighRevenueThreshold:   getEnvAsFloat("RULE_HIGH_REVENUE_THRESHOLD", 1000),
			FlaggedProcessor:       getEnv("RULE_FLAGGED_PROCESSOR", "clearent"),
			CoOwnerIndicator:       getEnv("RULE_CO_OWNER_INDICATOR", "jv"),
			ConcentrationTopN:      getEnvAsInt("METRICS_CONCENTRATION_TOP_N", 5),
			ReportCacheTTL:         getEnvAsDuration("REPORT_CACHE_TTL", 15*time.Minute),
			MetricsRefreshInterval: getEnvAsDuration("METRICS_REFRESH_INTERVAL", time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
