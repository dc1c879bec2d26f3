package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Document store
	MongoURI      string
	MongoDatabase string

	// Optional approval audit store
	PgsqlURL           string
	EnableDBMigrations bool
	MigrationsPath     string

	// Optional Redis for locks, report cache and background jobs
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AuthCookieName    string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`

	PosthogAPIKey string
	UploadDir     string

	ReportCacheTTL        time.Duration
	ApprovalLockTTL       time.Duration
	ApprovalLockWait      time.Duration
	NotifyOnPlainApproval bool
	LoginRateLimit        string

	WorkerConcurrency int
	PastDueCron       string
	WorkerMetricsPort string
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// AuditEnabled reports whether the PostgreSQL audit store is configured.
func (c *Config) AuditEnabled() bool {
	return c.PgsqlURL != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "workfriar")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_MIGRATIONS", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "workfriar")
	viper.SetDefault("AUTH_COOKIE_NAME", "token")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "postmessage")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("REPORT_CACHE_TTL", "10m")
	viper.SetDefault("APPROVAL_LOCK_TTL", "15s")
	viper.SetDefault("APPROVAL_LOCK_WAIT", "3s")
	viper.SetDefault("NOTIFY_ON_PLAIN_APPROVAL", false)
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("WORKER_CONCURRENCY", 5)
	viper.SetDefault("PAST_DUE_CRON", "0 9 * * 1")
	viper.SetDefault("WORKER_METRICS_PORT", "9091")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.MongoURI = viper.GetString("MONGO_URI")
	cfg.MongoDatabase = viper.GetString("MONGO_DATABASE")

	cfg.PgsqlURL = viper.GetString("PGSQL_URL")
	if cfg.PgsqlURL == "" {
		log.Println("Warning: PGSQL_URL not set. Approval audit trail is disabled.")
	}
	cfg.EnableDBMigrations = viper.GetBool("ENABLE_DB_MIGRATIONS")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Using in-process locks, no report cache and inline notifications.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = parseDuration("JWT_EXPIRY_DURATION", 24*time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.AuthCookieName = viper.GetString("AUTH_COOKIE_NAME")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set. Google sign-in will not function.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.UploadDir = viper.GetString("UPLOAD_DIR")

	cfg.ReportCacheTTL = parseDuration("REPORT_CACHE_TTL", 10*time.Minute)
	cfg.ApprovalLockTTL = parseDuration("APPROVAL_LOCK_TTL", 15*time.Second)
	cfg.ApprovalLockWait = parseDuration("APPROVAL_LOCK_WAIT", 3*time.Second)
	cfg.NotifyOnPlainApproval = viper.GetBool("NOTIFY_ON_PLAIN_APPROVAL")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.WorkerConcurrency = viper.GetInt("WORKER_CONCURRENCY")
	if cfg.WorkerConcurrency <= 0 {
		cfg.WorkerConcurrency = 5
	}
	cfg.PastDueCron = viper.GetString("PAST_DUE_CRON")
	cfg.WorkerMetricsPort = viper.GetString("WORKER_METRICS_PORT")

	return cfg, nil
}

// parseDuration reads a duration such as "90s" or "1h", falling back to def when unset or invalid.
func parseDuration(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}
