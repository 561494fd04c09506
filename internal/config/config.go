package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBConn        string
	LogLevel      string
	JWTSecret     string
	NessieAPIKey  string
	NessieBaseURL string
	UseMockData   bool
	RatesURL      string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SenderEmail   string
	ReminderCron  string
}

// NewConfig loads configuration from the environment. A .env file is applied
// first when present. DB_CONN is optional: when empty the service runs on
// in-memory stores.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBConn:        getEnv("DB_CONN", ""),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		NessieAPIKey:  getEnv("NESSIE_API_KEY", ""),
		NessieBaseURL: getEnv("NESSIE_BASE_URL", "http://api.nessieisreal.com"),
		RatesURL:      getEnv("RATES_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "noreply@creditkeeper.dev"),
		ReminderCron:  getEnv("REMINDER_CRON", "0 9 * * *"),
	}

	// Mock data unless a real API key is configured, or when forced.
	cfg.UseMockData = cfg.NessieAPIKey == "" || getEnv("USE_MOCK_DATA", "") == "true"

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
