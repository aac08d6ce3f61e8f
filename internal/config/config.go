package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseDriver string
	DatabaseURL    string
	SessionStore   string
	RedisURL       string
	JWTSecret      string
	Environment    string
	SessionTTL     time.Duration
	AllowedOrigins []string
	AdminEmails    []string
	Generation     GenerationConfig
	Events         EventConfig
}

// GenerationConfig selects and configures the language model backend.
type GenerationConfig struct {
	Provider      string
	GroqAPIKey    string
	GroqBaseURL   string
	GroqModel     string
	GeminiAPIKey  string
	GeminiBaseURL string // empty uses the library default endpoint
	GeminiModel   string
	Temperature   float64
	MaxTokens     int
	Timeout       time.Duration
}

// LoadConfig reads the environment, after loading any of files (default .env)
// that exist.
func LoadConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", "study.db"),
		SessionStore:   getEnv("SESSION_STORE", "memory"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		SessionTTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		AdminEmails:    getEnvList("ADMIN_EMAILS", nil),
		Generation: GenerationConfig{
			Provider:      getEnv("GENERATION_PROVIDER", "groq"),
			GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
			GroqBaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			GroqModel:     getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
			GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
			GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature:   getEnvFloat("GENERATION_TEMPERATURE", 0.5),
			MaxTokens:     getEnvInt("GENERATION_MAX_TOKENS", 4096),
			Timeout:       getEnvDuration("GENERATION_TIMEOUT", 60*time.Second),
		},
		Events: EventConfig{
			Enabled:      getEnvBool("EVENTS_ENABLED", false),
			Publisher:    getEnv("EVENTS_PUBLISHER", "mock"),
			KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
			StudyTopic:   getEnv("STUDY_EVENTS_TOPIC", "study-activity"),
		},
	}, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsAdmin reports whether email is listed in ADMIN_EMAILS.
func (c *Config) IsAdmin(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
