package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DBConfig holds the database settings. The URL is optional: when empty the
// service falls back to the in-memory store.
type DBConfig struct {
	URL string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// ScraperConfig holds the knobs of the extraction engine.
type ScraperConfig struct {
	// MaxPages is the per-search page cap.
	MaxPages int
	// PageDelay is the courtesy pause between sequential page fetches.
	PageDelay time.Duration
	// ScrapingBeeAPIKey, when set, routes page fetches through the
	// ScrapingBee rendering proxy instead of hitting OLX directly.
	ScrapingBeeAPIKey string
}

// AppConfig holds the whole application configuration.
type AppConfig struct {
	AppName      string
	HTTPPort     string
	Database     DBConfig
	Scraper      ScraperConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig loads the configuration from environment variables. A .env file
// is picked up when present; in containerized deployments the variables are
// usually injected directly, so a missing file is not an error.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("Warning: .env file found but could not be loaded: %v\n", err)
		}
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "olx-search-service")
	cfg.HTTPPort = getEnvAsString("HTTP_PORT", "8080")

	cfg.Database.URL = os.Getenv("DATABASE_URL")

	cfg.Scraper.MaxPages = getEnvAsInt("SCRAPER_MAX_PAGES", 3)
	cfg.Scraper.PageDelay = getEnvAsDuration("SCRAPER_PAGE_DELAY", 1500*time.Millisecond)
	cfg.Scraper.ScrapingBeeAPIKey = os.Getenv("SCRAPINGBEE_API_KEY")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnvAsString reads an environment variable or returns the default.
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as int or returns the default.
// Logs when the variable is present but unparseable.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool reads an environment variable as bool or returns the default.
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration reads an environment variable as a time.Duration ("1.5s",
// "500ms") or returns the default.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valDur, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valDur
}
