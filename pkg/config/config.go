package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Snapshot backends for the record store persistence collaborator.
const (
	SnapshotBackendMemory   = "memory"
	SnapshotBackendFile     = "file"
	SnapshotBackendPostgres = "postgres"
	SnapshotBackendRedis    = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Log       LogConfig
	Snapshot  SnapshotConfig
	Analytics AnalyticsConfig
	Exports   ExportsConfig
	Feedback  FeedbackConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthConfig holds the single admin credential pair. The password is hashed
// at startup; only the hash is compared at login.
type AuthConfig struct {
	AdminEmail    string
	AdminPassword string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SnapshotConfig selects where collection snapshots are written on mutation.
type SnapshotConfig struct {
	Backend string
	Dir     string
}

// AnalyticsConfig tunes cache behaviour for the score projections.
type AnalyticsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ExportsConfig controls generated export files and their signed downloads.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

// FeedbackConfig carries the list-view and registration conventions shared
// by the dashboard views.
type FeedbackConfig struct {
	PageSize        int
	StudentIDPrefix string
	Seed            bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.Auth = AuthConfig{
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Snapshot = SnapshotConfig{
		Backend: strings.ToLower(v.GetString("SNAPSHOT_BACKEND")),
		Dir:     v.GetString("SNAPSHOT_DIR"),
	}

	cfg.Analytics = AnalyticsConfig{
		CacheEnabled: v.GetBool("ANALYTICS_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("ANALYTICS_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
	}

	pageSize := v.GetInt("LIST_PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 5
	}
	cfg.Feedback = FeedbackConfig{
		PageSize:        pageSize,
		StudentIDPrefix: strings.ToUpper(strings.TrimSpace(v.GetString("STUDENT_ID_PREFIX"))),
		Seed:            v.GetBool("SEED_DEFAULTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "feedback_dashboard")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "feedback-api")

	v.SetDefault("ADMIN_EMAIL", "admin@dreamstars.com")
	v.SetDefault("ADMIN_PASSWORD", "admin")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SNAPSHOT_BACKEND", SnapshotBackendFile)
	v.SetDefault("SNAPSHOT_DIR", "./data")

	v.SetDefault("ANALYTICS_CACHE_ENABLED", false)
	v.SetDefault("ANALYTICS_CACHE_TTL", "10m")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")

	v.SetDefault("LIST_PAGE_SIZE", 5)
	v.SetDefault("STUDENT_ID_PREFIX", "DSV")
	v.SetDefault("SEED_DEFAULTS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
