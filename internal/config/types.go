package config

import "time"

// backend used for user metadata (usage counters, registration numbers)
type StoreBackend string

const (
	StorePostgres StoreBackend = "postgres"
	StoreRedis    StoreBackend = "redis"
	StoreMemory   StoreBackend = "memory"
)

type Config struct {
	Environment   string
	Port          string
	PublicSiteURL string

	JWTSecret     string
	SessionSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string

	DatabaseURL  string
	RedisURL     string
	StoreBackend StoreBackend
	AutoMigrate  bool

	TextProvider string
	TextModel    string
	AnthropicKey string
	OpenAIKey    string
	GeminiKey    string

	ReplicateToken     string
	HuggingFaceToken   string
	ProviderRetries    int
	ProviderRetryDelay time.Duration
	MaxConcurrent      int

	DailyLimit      int
	MVPUserCap      int
	WhitelistEmails []string

	DataDir       string
	WatermarkPath string

	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string

	RateLimit string
}

// reports whether the process runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
