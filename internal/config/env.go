package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultSiteURL         = "http://localhost:8080"
	defaultDailyLimit      = 10
	defaultMVPUserCap      = 100
	defaultProviderRetries = 3
	defaultProviderDelay   = 2 * time.Second
	defaultMaxConcurrent   = 4
	defaultRateLimit       = "30-M"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		Port:          getEnv("PORT", defaultPort),
		PublicSiteURL: strings.TrimRight(getEnv("PUBLIC_SITE_URL", getEnv("BASE_URL", defaultSiteURL)), "/"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionSecret: getEnv("SESSION_SECRET", os.Getenv("JWT_SECRET")),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),

		DatabaseURL:  getEnv("DATABASE_URL", os.Getenv("SUPABASE_CONNECTION_STRING")),
		RedisURL:     os.Getenv("REDIS_URL"),
		StoreBackend: StoreBackend(strings.ToLower(getEnv("STORE_BACKEND", string(StorePostgres)))),
		AutoMigrate:  getEnvBool("AUTO_MIGRATE", false),

		TextProvider: strings.ToLower(getEnv("TEXT_PROVIDER", "anthropic")),
		TextModel:    os.Getenv("TEXT_MODEL"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		GeminiKey:    os.Getenv("GEMINI_API_KEY"),

		ReplicateToken:     os.Getenv("REPLICATE_API_TOKEN"),
		HuggingFaceToken:   os.Getenv("HUGGINGFACE_API_TOKEN"),
		ProviderRetries:    getEnvInt("PROVIDER_RETRIES", defaultProviderRetries),
		ProviderRetryDelay: time.Duration(getEnvInt("PROVIDER_RETRY_DELAY_MS", int(defaultProviderDelay/time.Millisecond))) * time.Millisecond,
		MaxConcurrent:      getEnvInt("MAX_CONCURRENT_GENERATIONS", defaultMaxConcurrent),

		DailyLimit:      getEnvInt("DAILY_LIMIT", defaultDailyLimit),
		MVPUserCap:      getEnvInt("MVP_USER_CAP", defaultMVPUserCap),
		WhitelistEmails: splitList(os.Getenv("WHITELIST_EMAILS")),

		DataDir:       getEnv("DATA_DIR", "."),
		WatermarkPath: getEnv("WATERMARK_PATH", "signature.png"),

		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretKey:     os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),

		RateLimit: getEnv("RATE_LIMIT", defaultRateLimit),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	switch c.StoreBackend {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the postgres store")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL environment variable is required for the redis store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND: %s", c.StoreBackend)
	}

	if c.DailyLimit < 1 {
		c.DailyLimit = defaultDailyLimit
	}

	if c.MVPUserCap < 1 {
		c.MVPUserCap = defaultMVPUserCap
	}

	if c.ProviderRetries < 1 {
		c.ProviderRetries = 1
	}

	if c.MaxConcurrent < 1 {
		c.MaxConcurrent = 1
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return n
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return b
}

// splits a comma separated list, dropping blanks
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string

	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
