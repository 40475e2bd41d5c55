package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration
type Config struct {
	// Admin API
	AdminAPIURL    string
	AdminToken     string
	AdminTokenFile string

	// Console
	ConsolePort    string
	AllowedOrigins []string
	LoadTimeout    time.Duration
	BannerDuration time.Duration

	// Change notifications
	KafkaBroker string
	KafkaTopic  string
}

var (
	appConfig *Config
	onceEnv   sync.Once
)

func loadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		AdminAPIURL:    strings.TrimSuffix(getEnvWithDefault("ADMIN_API_URL", "http://localhost:8000"), "/"),
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		AdminTokenFile: getEnvWithDefault("ADMIN_TOKEN_FILE", ".admin-token"),

		ConsolePort:    getEnvWithDefault("CONSOLE_PORT", "8080"),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost", "http://localhost:3000"}),
		LoadTimeout:    time.Duration(getEnvAsInt("LOAD_TIMEOUT_SECONDS", 10)) * time.Second,
		BannerDuration: time.Duration(getEnvAsInt("BANNER_SECONDS", 3)) * time.Second,

		// Optional, notifications are disabled without a broker
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnvWithDefault("KAFKA_TOPIC", "registration-config-changes"),
	}
	return config
}

func Env() *Config {
	onceEnv.Do(func() {
		appConfig = loadConfig()
	})
	return appConfig
}

// Validate reports settings the console cannot start without.
func (c *Config) Validate() error {
	if c.AdminAPIURL == "" {
		return fmt.Errorf("ADMIN_API_URL must not be empty")
	}
	if c.LoadTimeout <= 0 {
		return fmt.Errorf("LOAD_TIMEOUT_SECONDS must be positive (got %s)", c.LoadTimeout)
	}
	if c.BannerDuration <= 0 {
		return fmt.Errorf("BANNER_SECONDS must be positive (got %s)", c.BannerDuration)
	}
	return nil
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	values := make([]string, 0)
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsProduction returns true if running in production
func IsProduction() bool {
	return getEnvWithDefault("ENVIRONMENT", "development") == "production"
}
