package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Pricing PricingConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds reference-data cache settings. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a Redis address is configured.
func (r *RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// S3Config holds the export archive bucket settings. An empty Bucket disables archiving.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings. Level "debug" enables gin debug mode and file:line
// prefixes on log lines.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Debug reports whether debug logging is enabled.
func (l *LogConfig) Debug() bool {
	return strings.EqualFold(l.Level, "debug")
}

// PricingConfig holds defaults applied to new documents.
type PricingConfig struct {
	DefaultCountry         string `mapstructure:"default_country"`
	DefaultKind            string `mapstructure:"default_kind"`
	DefaultTransactionType string `mapstructure:"default_transaction_type"`
}

// Load reads configuration from environment variables with the BILLBOOK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billbook")
	v.SetDefault("db.password", "billbook_secret")
	v.SetDefault("db.name", "billbook_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.conn_max_lifetime", "30m")

	// Redis defaults (disabled)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	// S3 defaults (archiving disabled)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Pricing defaults
	v.SetDefault("pricing.default_country", "IN")
	v.SetDefault("pricing.default_kind", "sale")
	v.SetDefault("pricing.default_transaction_type", "cash")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "BILLBOOK_SERVER_PORT",
		"server.read_timeout":              "BILLBOOK_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "BILLBOOK_SERVER_WRITE_TIMEOUT",
		"server.environment":               "BILLBOOK_SERVER_ENVIRONMENT",
		"db.host":                          "BILLBOOK_DB_HOST",
		"db.port":                          "BILLBOOK_DB_PORT",
		"db.user":                          "BILLBOOK_DB_USER",
		"db.password":                      "BILLBOOK_DB_PASSWORD",
		"db.name":                          "BILLBOOK_DB_NAME",
		"db.sslmode":                       "BILLBOOK_DB_SSLMODE",
		"db.max_open":                      "BILLBOOK_DB_MAX_OPEN",
		"db.max_idle":                      "BILLBOOK_DB_MAX_IDLE",
		"db.conn_max_lifetime":             "BILLBOOK_DB_CONN_MAX_LIFETIME",
		"redis.addr":                       "BILLBOOK_REDIS_ADDR",
		"redis.password":                   "BILLBOOK_REDIS_PASSWORD",
		"redis.db":                         "BILLBOOK_REDIS_DB",
		"redis.ttl":                        "BILLBOOK_REDIS_TTL",
		"s3.region":                        "BILLBOOK_S3_REGION",
		"s3.bucket":                        "BILLBOOK_S3_BUCKET",
		"s3.endpoint":                      "BILLBOOK_S3_ENDPOINT",
		"s3.access_key":                    "BILLBOOK_S3_ACCESS_KEY",
		"s3.secret_key":                    "BILLBOOK_S3_SECRET_KEY",
		"s3.presign_expiry":                "BILLBOOK_S3_PRESIGN_EXPIRY",
		"log.level":                        "BILLBOOK_LOG_LEVEL",
		"cors.allowed_origins":             "BILLBOOK_CORS_ALLOWED_ORIGINS",
		"pricing.default_country":          "BILLBOOK_PRICING_DEFAULT_COUNTRY",
		"pricing.default_kind":             "BILLBOOK_PRICING_DEFAULT_KIND",
		"pricing.default_transaction_type": "BILLBOOK_PRICING_DEFAULT_TRANSACTION_TYPE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if BILLBOOK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLBOOK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		TTL:      v.GetDuration("redis.ttl"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Pricing = PricingConfig{
		DefaultCountry:         v.GetString("pricing.default_country"),
		DefaultKind:            v.GetString("pricing.default_kind"),
		DefaultTransactionType: v.GetString("pricing.default_transaction_type"),
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (p *PricingConfig) validate() error {
	switch p.DefaultKind {
	case "sale", "purchase":
	default:
		return fmt.Errorf("config: invalid pricing.default_kind %q", p.DefaultKind)
	}
	switch p.DefaultTransactionType {
	case "cash", "credit":
	default:
		return fmt.Errorf("config: invalid pricing.default_transaction_type %q", p.DefaultTransactionType)
	}
	return nil
}
