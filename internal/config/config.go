package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	JWTVerifyExpiry  time.Duration

	// Server
	Port          string
	CORSOrigins   string
	RateLimitAPI  int
	RateLimitAuth int
	FrontendURL   string
	AppEnv        string
	SentryDSN     string

	// Mail (verification emails)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	// Media host (S3 compatible)
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	MediaPublicURL string

	// Recipe suggestion API
	SpoonacularURL      string
	SpoonacularKey      string
	SpoonacularRPS      float64
	SpoonacularCacheTTL time.Duration

	// Redis (optional; suggestion cache)
	RedisURL string

	// Logging
	LogRetentionDays int
}

// Load builds the configuration from environment variables. When path is not
// empty the YAML file at path supplies values for keys missing from the
// environment; keys in the file use the environment variable names.
func Load(path string) (*Config, error) {
	src := source{file: map[string]string{}}
	if path != "" {
		file, err := readFile(path)
		if err != nil {
			return nil, err
		}
		src.file = file
	}

	return &Config{
		DBHost:     src.get("DB_HOST", "localhost"),
		DBPort:     src.get("DB_PORT", "5432"),
		DBUser:     src.get("DB_USER", "postgres"),
		DBPassword: src.get("DB_PASSWORD", ""),
		DBName:     src.get("DB_NAME", "foodhub"),
		DBSSLMode:  src.get("DB_SSLMODE", "disable"),

		JWTSecret:        src.get("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(src.get("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(src.get("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),
		JWTVerifyExpiry:  parseDuration(src.get("JWT_VERIFY_EXPIRY", "168h"), 168*time.Hour),

		Port:          src.get("PORT", "3001"),
		CORSOrigins:   src.get("CORS_ORIGINS", "*"),
		RateLimitAPI:  parseInt(src.get("RATE_LIMIT_API", "60"), 60),
		RateLimitAuth: parseInt(src.get("RATE_LIMIT_AUTH", "10"), 10),
		FrontendURL:   src.get("FRONTEND_URL", "http://localhost:3000"),
		AppEnv:        src.get("APP_ENV", "development"),
		SentryDSN:     src.get("SENTRY_DSN", ""),

		SMTPHost:     src.get("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     parseInt(src.get("SMTP_PORT", "587"), 587),
		SMTPUser:     src.get("SMTP_USER", ""),
		SMTPPassword: src.get("SMTP_PASSWORD", ""),
		MailFrom:     src.get("MAIL_FROM", "FoodHub <no-reply@foodhub.local>"),

		S3Bucket:       src.get("S3_BUCKET", "foodhub-media"),
		S3Region:       src.get("S3_REGION", "us-east-1"),
		S3Endpoint:     src.get("S3_ENDPOINT", ""),
		S3AccessKey:    src.get("S3_ACCESS_KEY", ""),
		S3SecretKey:    src.get("S3_SECRET_KEY", ""),
		MediaPublicURL: src.get("MEDIA_PUBLIC_URL", ""),

		SpoonacularURL:      src.get("SPOONACULAR_URL", "https://api.spoonacular.com"),
		SpoonacularKey:      src.get("SPOONACULAR_KEY", ""),
		SpoonacularRPS:      parseFloat(src.get("SPOONACULAR_RPS", "2"), 2),
		SpoonacularCacheTTL: parseDuration(src.get("SPOONACULAR_CACHE_TTL", "1h"), time.Hour),

		RedisURL: src.get("REDIS_URL", ""),

		LogRetentionDays: parseInt(src.get("LOG_RETENTION_DAYS", "30"), 30),
	}, nil
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

type source struct {
	file map[string]string
}

func (s source) get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if val, ok := s.file[key]; ok && val != "" {
		return val
	}
	return fallback
}

func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		values[k] = fmt.Sprint(v)
	}
	return values, nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}
