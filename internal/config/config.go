package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих значения из файла
// Например, SALON_DATABASE_PASSWORD или SALON_CHECKOUT_KEYSECRET
const EnvPrefix = "SALON"

const (
	StorageBackendPostgres = "postgres"
	StorageBackendKV       = "kv"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Storage  StorageConfig  `toml:"storage"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Checkout CheckoutConfig `toml:"checkout"`
	Notifier NotifierConfig `toml:"notifier"`
	Booking  BookingConfig  `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	PoolSize int    `toml:"pool_size"`
}

// StorageConfig выбор бэкенда для каталога услуг и пользователей
type StorageConfig struct {
	Backend string `toml:"backend"` // postgres | kv
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
	Issuer        string `toml:"issuer"`
	// SuperadminEmails адреса, получающие роль superadmin при регистрации
	SuperadminEmails []string `toml:"superadmin_emails" split_words:"true"`
}

type CheckoutConfig struct {
	BaseURL      string `toml:"base_url"`
	KeyID        string `toml:"key_id"`
	KeySecret    string `toml:"key_secret"`
	Currency     string `toml:"currency"`
	BusinessName string `toml:"business_name"`
	ThemeColor   string `toml:"theme_color"`
	Timeout      int    `toml:"timeout"`
}

type NotifierConfig struct {
	DefaultWebhook string `toml:"default_webhook"`
	Timeout        int    `toml:"timeout"`
}

type BookingConfig struct {
	FlowTTLMinutes int `toml:"flow_ttl_minutes"`
}

// Load читает конфигурацию из TOML-файла, затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env необязателен: в проде переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis:   RedisConfig{Addr: "localhost:6379", PoolSize: 10},
		Storage: StorageConfig{Backend: StorageBackendPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "smc_salon_service"},
		Auth:    AuthConfig{TokenTTLHours: 72, Issuer: "smc-salon"},
		Checkout: CheckoutConfig{
			Currency:     "INR",
			BusinessName: "Salon Suite",
			ThemeColor:   "#d63384",
			Timeout:      10,
		},
		Notifier: NotifierConfig{Timeout: 5},
		Booking:  BookingConfig{FlowTTLMinutes: 60},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	backend := strings.ToLower(c.Storage.Backend)
	if backend != StorageBackendPostgres && backend != StorageBackendKV {
		return fmt.Errorf("%w: storage.backend must be %q or %q, got %q",
			ErrInvalidConfig, StorageBackendPostgres, StorageBackendKV, c.Storage.Backend)
	}
	c.Storage.Backend = backend

	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("%w: auth.token_ttl_hours must be positive", ErrInvalidConfig)
	}
	if c.Booking.FlowTTLMinutes <= 0 {
		return fmt.Errorf("%w: booking.flow_ttl_minutes must be positive", ErrInvalidConfig)
	}

	return nil
}
