package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Minio     MinioConfig
	Catalog   CatalogConfig
	Analytics AnalyticsConfig
	Seed      SeedConfig
	Log       LogConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// set from the command line, not the config file
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type StoreConfig struct {
	Type string `mapstructure:"type"`
	// Path is the JSON file for the file backend.
	Path string `mapstructure:"path"`
	// Key names the snapshot document for the database, redis and minio backends.
	Key        string `mapstructure:"key"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool   `mapstructure:"parse_time"`
	SSLMode   string `mapstructure:"ssl_mode"`
	// Path is the database file for the sqlite driver.
	Path string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type AnalyticsConfig struct {
	// Public exposes GET /api/analytics without a bearer token.
	Public bool `mapstructure:"public"`
}

type SeedConfig struct {
	DemoUsers    bool   `mapstructure:"demo_users"`
	DemoPassword string `mapstructure:"demo_password"`
	CatalogFile  string `mapstructure:"catalog_file"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ServiceName       string `mapstructure:"service_name"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

const (
	devSecret           = "dev_secret_for_mindra"
	defaultDemoPassword = "password123"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "4000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("jwt.secret", devSecret)
	v.SetDefault("jwt.expire_hours", 7*24)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("store.type", "file")
	v.SetDefault("store.path", "data/db.json")
	v.SetDefault("store.key", "db")
	v.SetDefault("store.max_retries", 5)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("catalog.cache_ttl", "1m")
	v.SetDefault("analytics.public", true)
	v.SetDefault("seed.demo_password", defaultDemoPassword)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("tracing.service_name", "mindra")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig reads config.yaml from path. Environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("MINDRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Minio
	v.BindEnv("minio.endpoint", "MINIO_ENDPOINT")
	v.BindEnv("minio.access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("minio.secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("minio.bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret must be set")
	}
	if c.Server.Mode == "release" {
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
		}
		if c.JWT.Secret == devSecret {
			return fmt.Errorf("the development JWT secret cannot be used in release mode")
		}
		if c.Seed.DemoUsers && (c.Seed.DemoPassword == "" || c.Seed.DemoPassword == defaultDemoPassword) {
			return fmt.Errorf("seed.demo_password must be changed from the default when demo users are seeded in release mode")
		}
	}
	if c.JWT.ExpireTime <= 0 {
		return fmt.Errorf("jwt expire_hours must be positive")
	}

	switch c.Store.Type {
	case "file":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the file store")
		}
	case "database", "redis", "minio":
		if c.Store.Key == "" {
			return fmt.Errorf("store.key is required for the %s store", c.Store.Type)
		}
	default:
		return fmt.Errorf("unknown store type %q", c.Store.Type)
	}
	return nil
}
