package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	Env         string
	CORSOrigins []string

	// AdminPIN gates the admin surface; SweepSecret gates the reminder
	// sweep so automation does not need operator credentials.
	AdminPIN    string
	SweepSecret string

	OTP      OTPConfig
	Reminder ReminderConfig
	DB       DBConfig
	Twilio   TwilioConfig
	Expo     ExpoConfig
}

type OTPConfig struct {
	TTL time.Duration
	// EchoFallback returns the code in the request-code response when
	// SMS delivery is unavailable. Dev/test escape hatch only.
	EchoFallback bool
}

type ReminderConfig struct {
	Lead      time.Duration
	Tolerance time.Duration
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	APIBase    string
}

type ExpoConfig struct {
	Enabled bool
	URL     string
}

func Load() Config {
	// Missing .env is fine; real env vars win either way.
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	return Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Env:         env,
		CORSOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		AdminPIN:    getEnv("ADMIN_PIN", ""),
		SweepSecret: getEnv("SWEEP_SECRET", ""),
		OTP: OTPConfig{
			TTL:          getEnvDuration("OTP_TTL", 10*time.Minute),
			EchoFallback: getEnvBool("OTP_ECHO_FALLBACK", env == "development"),
		},
		Reminder: ReminderConfig{
			Lead:      getEnvDuration("REMINDER_LEAD", 24*time.Hour),
			Tolerance: getEnvDuration("REMINDER_TOLERANCE", 10*time.Minute),
		},
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "club_app"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Twilio: TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
			APIBase:    getEnv("TWILIO_API_BASE", ""),
		},
		Expo: ExpoConfig{
			Enabled: getEnvBool("EXPO_PUSH_ENABLED", true),
			URL:     getEnv("EXPO_PUSH_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
