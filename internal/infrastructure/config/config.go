// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application. It is built once at
// startup and passed down unchanged; nothing mutates it mid-pass.
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Amadeus
	AmadeusAPIKey    string
	AmadeusAPISecret string
	AmadeusBaseURL   string

	// Search
	Origin         string
	Destination    string
	DepartureDates []string
	TravelClasses  []string // cabin overrides per sub-query; empty = all cabins
	Adults         int
	CurrencyCode   string
	MaxResults     int

	// Filter policy
	MaxPriceFilter *decimal.Decimal // nil = no ceiling
	ExemptCarrier  string
	DirectOnly     bool

	// Alert thresholds
	MaxPriceAlert      decimal.Decimal
	MinSeatsAlert      int
	TargetFlightNumber string
	NotifyAlways       bool

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (optional airline reference table)
	PostgresURI string

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	EmailFrom         string
	EmailTo           string

	// Driver; 0 means run one pass and exit
	CheckInterval time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		AmadeusAPIKey:    getEnv("AMADEUS_API_KEY", ""),
		AmadeusAPISecret: getEnv("AMADEUS_API_SECRET", ""),
		AmadeusBaseURL:   getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),

		Origin:         getEnv("ORIGIN", "SIN"),
		Destination:    getEnv("DESTINATION", "MEL"),
		DepartureDates: getEnvAsList("DEPARTURE_DATES", "2026-02-16"),
		TravelClasses:  getEnvAsList("TRAVEL_CLASSES", ""),
		Adults:         getEnvAsInt("ADULTS", 1),
		CurrencyCode:   getEnv("CURRENCY_CODE", "AUD"),
		MaxResults:     getEnvAsInt("MAX_RESULTS", 10),

		MaxPriceFilter: getEnvAsDecimalPtr("MAX_PRICE_FILTER"),
		ExemptCarrier:  getEnv("EXEMPT_CARRIER", "JQ"),
		DirectOnly:     getEnvAsBool("DIRECT_ONLY", false),

		MaxPriceAlert:      getEnvAsDecimal("MAX_PRICE_ALERT", "1200.00"),
		MinSeatsAlert:      getEnvAsInt("MIN_SEATS_ALERT", 2),
		TargetFlightNumber: getEnv("TARGET_FLIGHT_NUMBER", ""),
		NotifyAlways:       getEnvAsBool("NOTIFY_ALWAYS", false),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "flightwatch"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		EmailFrom:         getEnv("EMAIL_FROM", ""),
		EmailTo:           getEnv("EMAIL_TO", ""),

		CheckInterval: time.Duration(getEnvAsInt("CHECK_INTERVAL", 0)) * time.Second,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)
	if valueStr == "" {
		return nil
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func getEnvAsDecimal(key, defaultValue string) decimal.Decimal {
	if value, err := decimal.NewFromString(getEnv(key, defaultValue)); err == nil {
		return value
	}
	value, _ := decimal.NewFromString(defaultValue)
	return value
}

func getEnvAsDecimalPtr(key string) *decimal.Decimal {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return nil
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return nil
	}
	return &value
}
