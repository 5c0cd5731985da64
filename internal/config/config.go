package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Media    MediaConfig
	Logging  LoggingConfig
	Badges   BadgeConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
}

// DatabaseConfig holds Postgres configuration
type DatabaseConfig struct {
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	ConnectRetries     uint64
	SlowQueryThreshold time.Duration
	MigrationsPath     string
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret  string
	JWTExpiry  time.Duration
	BCryptCost int
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Provider        string // "memory" or "redis"
	RedisURL        string
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
}

// MediaConfig holds Cloudinary configuration for pin images
type MediaConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadFolder string
	MaxFileSize  int64
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// BadgeConfig holds badge engine configuration
type BadgeConfig struct {
	// EvaluationTimeout bounds a single background evaluation run.
	EvaluationTimeout time.Duration
	// QueueSize is the buffer of the badge-check event queue.
	QueueSize int
	// WorkerCount is the number of concurrent badge-check workers.
	WorkerCount int
	// CatalogTTL is how long the badge catalog stays cached.
	CatalogTTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		_ = godotenv.Load()
	}

	config := &Config{
		Server:   loadServerConfig(env),
		Database: loadDatabaseConfig(env),
		Auth:     loadAuthConfig(),
		Cache:    loadCacheConfig(),
		Media:    loadMediaConfig(),
		Logging:  loadLoggingConfig(env),
		Badges:   loadBadgeConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadServerConfig(env string) ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "9000"),
		Host:            getEnv("SERVER_HOST", "0.0.0.0"),
		Environment:     env,
		ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		GracefulTimeout: getDurationEnv("GRACEFUL_TIMEOUT", 30*time.Second),
	}
}

func loadDatabaseConfig(env string) DatabaseConfig {
	var defaultMaxOpen, defaultMaxIdle int
	var defaultConnLifetime time.Duration

	switch env {
	case "production":
		defaultMaxOpen = 50
		defaultMaxIdle = 20
		defaultConnLifetime = 15 * time.Minute
	default: // development
		defaultMaxOpen = 10
		defaultMaxIdle = 5
		defaultConnLifetime = 5 * time.Minute
	}

	return DatabaseConfig{
		URL:                os.Getenv("DATABASE_URL"),
		MaxOpenConns:       getIntEnv("DB_MAX_OPEN_CONNS", defaultMaxOpen),
		MaxIdleConns:       getIntEnv("DB_MAX_IDLE_CONNS", defaultMaxIdle),
		ConnMaxLifetime:    getDurationEnv("DB_CONN_MAX_LIFETIME", defaultConnLifetime),
		ConnMaxIdleTime:    getDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		ConnectRetries:     uint64(getIntEnv("DB_CONNECT_RETRIES", 5)),
		SlowQueryThreshold: getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 100*time.Millisecond),
		MigrationsPath:     getEnv("DB_MIGRATIONS_PATH", "./migrations"),
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:  getEnv("JWT_SECRET", ""),
		JWTExpiry:  getDurationEnv("JWT_EXPIRY", 24*time.Hour),
		BCryptCost: getIntEnv("BCRYPT_COST", 12),
	}
}

func loadCacheConfig() CacheConfig {
	provider := getEnv("CACHE_PROVIDER", "memory")
	if os.Getenv("REDIS_URL") != "" {
		provider = getEnv("CACHE_PROVIDER", "redis")
	}

	return CacheConfig{
		Provider:        provider,
		RedisURL:        getEnv("REDIS_URL", ""),
		DefaultTTL:      getDurationEnv("CACHE_DEFAULT_TTL", 5*time.Minute),
		CleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", time.Minute),
	}
}

func loadMediaConfig() MediaConfig {
	return MediaConfig{
		CloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		APISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		UploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "craftpin/pins"),
		MaxFileSize:  getInt64Env("CLOUDINARY_MAX_FILE_SIZE", 10*1024*1024),
	}
}

func loadLoggingConfig(env string) LoggingConfig {
	format := "console"
	level := "debug"
	if env == "production" {
		format = "json"
		level = "info"
	}

	return LoggingConfig{
		Level:  getEnv("LOG_LEVEL", level),
		Format: getEnv("LOG_FORMAT", format),
	}
}

func loadBadgeConfig() BadgeConfig {
	return BadgeConfig{
		EvaluationTimeout: getDurationEnv("BADGE_EVALUATION_TIMEOUT", 10*time.Second),
		QueueSize:         getIntEnv("BADGE_QUEUE_SIZE", 1000),
		WorkerCount:       getIntEnv("BADGE_WORKER_COUNT", 4),
		CatalogTTL:        getDurationEnv("BADGE_CATALOG_TTL", 10*time.Minute),
	}
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := c.Auth.Validate(c.Server.Environment); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}

	if err := c.Badges.Validate(); err != nil {
		return fmt.Errorf("badge config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (s *ServerConfig) Validate() error {
	if s.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if s.ReadTimeout <= 0 {
		return fmt.Errorf("ReadTimeout must be positive")
	}

	if s.WriteTimeout <= 0 {
		return fmt.Errorf("WriteTimeout must be positive")
	}

	return nil
}

// Validate validates database configuration
func (d *DatabaseConfig) Validate() error {
	if d.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if d.MaxOpenConns <= 0 {
		return fmt.Errorf("MaxOpenConns must be positive")
	}

	if d.MaxIdleConns < 0 {
		return fmt.Errorf("MaxIdleConns cannot be negative")
	}

	if d.MaxIdleConns > d.MaxOpenConns {
		return fmt.Errorf("MaxIdleConns cannot be greater than MaxOpenConns")
	}

	if d.ConnMaxLifetime <= 0 {
		return fmt.Errorf("ConnMaxLifetime must be positive")
	}

	return nil
}

// Validate validates auth configuration
func (a *AuthConfig) Validate(env string) error {
	if a.JWTSecret == "" && env == "production" {
		return fmt.Errorf("JWT_SECRET must be set for production")
	}

	if a.BCryptCost < 4 || a.BCryptCost > 31 {
		return fmt.Errorf("BCryptCost must be between 4 and 31")
	}

	return nil
}

// Validate validates badge engine configuration
func (b *BadgeConfig) Validate() error {
	if b.EvaluationTimeout <= 0 {
		return fmt.Errorf("EvaluationTimeout must be positive")
	}

	if b.QueueSize <= 0 {
		return fmt.Errorf("QueueSize must be positive")
	}

	if b.WorkerCount <= 0 {
		return fmt.Errorf("WorkerCount must be positive")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
