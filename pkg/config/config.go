package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Groq      GroqConfig
	Interview InterviewConfig
	Sweeper   SweeperConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"interview_assistant"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// StorageConfig selects the repository backend
type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"postgres"` // "postgres" or "memory"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Channel  string `envconfig:"REDIS_CHANNEL" default:"interview_events"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string        `envconfig:"JWT_ACCESS_SECRET" default:"your-access-secret-change-in-production"`
	AccessExpiry time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	Issuer       string        `envconfig:"JWT_ISSUER" default:"interview-assistant"`
}

// GroqConfig holds the answer analysis provider configuration
type GroqConfig struct {
	APIKey          string        `envconfig:"GROQ_API_KEY"`
	BaseURL         string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model           string        `envconfig:"GROQ_MODEL" default:"llama-3.1-8b-instant"`
	Timeout         time.Duration `envconfig:"GROQ_TIMEOUT" default:"10s"`
	MaxRetryElapsed time.Duration `envconfig:"GROQ_MAX_RETRY_ELAPSED" default:"5s"`
}

// InterviewConfig holds the adaptive engine tunables
type InterviewConfig struct {
	DefaultExpiresHours int     `envconfig:"INTERVIEW_DEFAULT_EXPIRES_HOURS" default:"24"`
	TokenAttempts       int     `envconfig:"INTERVIEW_TOKEN_ATTEMPTS" default:"5"`
	LowRelevance        float64 `envconfig:"INTERVIEW_LOW_RELEVANCE" default:"0.3"`
	NegativeSentiment   float64 `envconfig:"INTERVIEW_NEGATIVE_SENTIMENT" default:"0.5"`
	CompletionFraction  float64 `envconfig:"INTERVIEW_COMPLETION_FRACTION" default:"0.8"`
}

// SweeperConfig holds the background expiry job configuration
type SweeperConfig struct {
	Enabled  bool          `envconfig:"SWEEPER_ENABLED" default:"false"`
	Schedule string        `envconfig:"SWEEPER_SCHEDULE" default:"@every 1m"`
	Timeout  time.Duration `envconfig:"SWEEPER_TIMEOUT" default:"30s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	sections := []interface{}{
		&config.Server,
		&config.Database,
		&config.Storage,
		&config.Redis,
		&config.JWT,
		&config.Groq,
		&config.Interview,
		&config.Sweeper,
	}
	for _, spec := range sections {
		if err := envconfig.Process("", spec); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be postgres or memory, got %q", c.Storage.Driver)
	}
	if c.Interview.DefaultExpiresHours < 1 || c.Interview.DefaultExpiresHours > 168 {
		return fmt.Errorf("INTERVIEW_DEFAULT_EXPIRES_HOURS must be between 1 and 168")
	}
	if c.Interview.TokenAttempts < 1 {
		return fmt.Errorf("INTERVIEW_TOKEN_ATTEMPTS must be at least 1")
	}
	if c.Interview.LowRelevance < 0 || c.Interview.LowRelevance > 1 {
		return fmt.Errorf("INTERVIEW_LOW_RELEVANCE must be within [0,1]")
	}
	if c.Interview.NegativeSentiment < 0 || c.Interview.NegativeSentiment > 1 {
		return fmt.Errorf("INTERVIEW_NEGATIVE_SENTIMENT must be within [0,1]")
	}
	if c.Interview.CompletionFraction <= 0 || c.Interview.CompletionFraction > 1 {
		return fmt.Errorf("INTERVIEW_COMPLETION_FRACTION must be within (0,1]")
	}
	if c.IsProduction() && c.JWT.AccessSecret == "your-access-secret-change-in-production" {
		return fmt.Errorf("JWT_ACCESS_SECRET must be set in production")
	}
	return nil
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
