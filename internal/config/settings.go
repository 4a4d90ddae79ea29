package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultDSN           = "file:quiz.db?_foreign_keys=on"
	defaultSessionSecret = "quizforge-dev-session-secret-change-me"
	defaultJWTSecret     = "quizforge-dev-jwt-secret-change-me"
)

type Settings struct {
	Port     string
	LogLevel string

	DatabaseDSN string
	RedisURL    string

	SessionSecret    string
	SessionSecretSet bool
	JWTSecret        string
	JWTSecretSet     bool

	OracleProvider string
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	OracleTimeout  time.Duration

	Timezone          *time.Location
	AllowedOrigins    []string
	GenerateRateLimit int
	MaxUploadBytes    int64
}

// Load reads the environment, after loading an optional .env file.
func Load() *Settings {
	_ = godotenv.Load()

	secret := os.Getenv("SESSION_SECRET")
	jwtSecret := os.Getenv("JWT_SECRET")

	return &Settings{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabaseDSN:       getEnv("DATABASE_DSN", defaultDSN),
		RedisURL:          os.Getenv("REDIS_URL"),
		SessionSecret:     getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionSecretSet:  secret != "",
		JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
		JWTSecretSet:      jwtSecret != "",
		OracleProvider:    strings.ToLower(getEnv("ORACLE_PROVIDER", ProviderGemini)),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OracleTimeout:     getEnvDuration("ORACLE_TIMEOUT", 60*time.Second),
		Timezone:          loadLocation(getEnv("APP_TIMEZONE", "UTC")),
		AllowedOrigins:    splitList(os.Getenv("ALLOWED_ORIGINS")),
		GenerateRateLimit: getEnvInt("GENERATE_RATE_LIMIT", 10),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 10)) * 1024 * 1024,
	}
}

// OracleAPIKey returns the credential of the selected provider.
func (s *Settings) OracleAPIKey() string {
	if s.OracleProvider == ProviderOpenAI {
		return s.OpenAIAPIKey
	}
	return s.GeminiAPIKey
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		Logger.WithError(err).Warnf("unknown APP_TIMEZONE %q, using UTC", name)
		return time.UTC
	}
	return loc
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
