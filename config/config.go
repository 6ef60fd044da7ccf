package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	Debug       bool
	CORSOrigins []string
	StaticDir   string
	FrontendURL string

	// Database
	DatabaseURL string

	// Authentication
	JWTSecret      string
	JWTExpiryHours int
	GoogleClientID string
	ResetTokenTTL  time.Duration

	// Email
	SMTPHost      string
	SMTPPort      int
	EmailUser     string
	EmailPass     string
	EmailFromName string

	// LLM
	LLM LLMConfig

	// Google Cloud (vertex provider, gcs storage)
	ProjectID string
	Location  string

	// Cache
	RedisURL         string
	AnalysisCacheTTL time.Duration

	// Resume file storage
	Storage StorageConfig

	// Limits
	MaxUploadMB        int
	HTTPTimeoutSeconds int
}

// LLMConfig selects and tunes the completion provider
type LLMConfig struct {
	Provider          string
	Model             string
	APIKey            string
	BaseURL           string
	Temperature       float64
	MaxTokens         int
	RequestsPerMinute int
	TimeoutSeconds    int
}

// StorageConfig configures where uploaded resume files are archived
type StorageConfig struct {
	Provider  string // none, gcs, s3
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server
		Port:        getEnv("PORT", "4000"),
		Debug:       getEnvBool("DEBUG", false),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		StaticDir:   getEnv("STATIC_DIR", ""),
		FrontendURL: strings.TrimSuffix(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),

		// Authentication
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
		ResetTokenTTL:  getEnvDuration("RESET_TOKEN_TTL", time.Hour),

		// Email
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnvInt("SMTP_PORT", 587),
		EmailUser:     getEnv("EMAIL_USER", ""),
		EmailPass:     getEnv("EMAIL_PASS", ""),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Resume App"),

		LLM: LLMConfig{
			Provider:          strings.ToLower(getEnv("LLM_PROVIDER", "groq")),
			Model:             getEnv("LLM_MODEL", ""),
			APIKey:            getEnv("LLM_API_KEY", os.Getenv("GROQ_API_KEY")),
			BaseURL:           getEnv("LLM_BASE_URL", ""),
			Temperature:       getEnvFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:         getEnvInt("LLM_MAX_TOKENS", 4096),
			RequestsPerMinute: getEnvInt("LLM_REQUESTS_PER_MINUTE", 30),
			TimeoutSeconds:    getEnvInt("LLM_TIMEOUT_SECONDS", 60),
		},

		// Google Cloud
		ProjectID: getEnv("PROJECT_ID", ""),
		Location:  getEnv("LOCATION", "us-central1"),

		// Cache
		RedisURL:         getEnv("REDIS_URL", ""),
		AnalysisCacheTTL: getEnvDuration("ANALYSIS_CACHE_TTL", 24*time.Hour),

		Storage: StorageConfig{
			Provider:  strings.ToLower(getEnv("STORAGE_PROVIDER", "none")),
			Bucket:    getEnv("STORAGE_BUCKET", ""),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Region:    getEnv("S3_REGION", "auto"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},

		MaxUploadMB:        getEnvInt("MAX_UPLOAD_MB", 10),
		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 30),
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel(cfg.LLM.Provider)
	}

	return cfg
}

// DefaultModel returns the model used when LLM_MODEL is not set
func DefaultModel(provider string) string {
	switch provider {
	case "openrouter":
		return "meta-llama/llama-3.1-8b-instruct"
	case "claude":
		return "claude-3-7-sonnet-latest"
	case "gemini", "vertex":
		return "gemini-2.5-flash"
	default:
		return "llama-3.1-8b-instant"
	}
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return &ConfigError{Field: "DATABASE_URL", Message: "DATABASE_URL is required"}
	}

	if !c.Debug && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return &ConfigError{Field: "JWT_SECRET", Message: "JWT_SECRET must be set outside debug mode"}
	}

	switch c.LLM.Provider {
	case "groq", "openrouter", "claude", "gemini":
		if c.LLM.APIKey == "" {
			return &ConfigError{Field: "LLM_API_KEY", Message: "LLM_API_KEY is required for provider " + c.LLM.Provider}
		}
	case "vertex":
		if c.ProjectID == "" {
			return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Vertex AI"}
		}
	default:
		return &ConfigError{Field: "LLM_PROVIDER", Message: "unsupported LLM_PROVIDER: " + c.LLM.Provider}
	}

	switch c.Storage.Provider {
	case "", "none":
	case "gcs", "s3":
		if c.Storage.Bucket == "" {
			return &ConfigError{Field: "STORAGE_BUCKET", Message: "STORAGE_BUCKET is required for storage provider " + c.Storage.Provider}
		}
	default:
		return &ConfigError{Field: "STORAGE_PROVIDER", Message: "unsupported STORAGE_PROVIDER: " + c.Storage.Provider}
	}

	return nil
}

// MailEnabled reports whether SMTP credentials are configured
func (c *Config) MailEnabled() bool {
	return c.EmailUser != "" && c.EmailPass != ""
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
