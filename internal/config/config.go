package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service"`
	Pricing     PricingConfig     `toml:"pricing"`
	Pooling     PoolingConfig     `toml:"pooling"`
	NoShow      NoShowConfig      `toml:"noshow"`
	Cache       CacheConfig       `toml:"cache"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки Redis. Пустой addr выключает кэш
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Enabled сообщает, настроен ли Redis
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// UserServiceConfig настройки клиента UserService
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// PricingConfig параметры тарификации
type PricingConfig struct {
	BaseRate        float64 `toml:"base_rate"`
	PeakMultiplier  float64 `toml:"peak_multiplier"`
	SurgeMultiplier float64 `toml:"surge_multiplier"`
	DailyDiscount   float64 `toml:"daily_discount"`
	MonthlyDiscount float64 `toml:"monthly_discount"`
	Timezone        string  `toml:"timezone"`
}

// Location часовой пояс, в котором считаются часы пик и будни
func (c PricingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// PoolingConfig параметры объединения поездок
type PoolingConfig struct {
	RadiusMeters float64 `toml:"radius_meters"`
}

// NoShowConfig параметры перевода неявок в NO_SHOW
type NoShowConfig struct {
	Enabled      bool   `toml:"enabled"`
	Schedule     string `toml:"schedule"`
	GraceMinutes int    `toml:"grace_minutes"`
	BatchSize    int    `toml:"batch_size"`
}

// Grace допустимое опоздание к началу бронирования
func (c NoShowConfig) Grace() time.Duration {
	return time.Duration(c.GraceMinutes) * time.Minute
}

// CacheConfig время жизни кэшей в секундах
type CacheConfig struct {
	LotsTTL    int `toml:"lots_ttl"`
	PricingTTL int `toml:"pricing_ttl"`
}

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию
// и применяет переопределения из переменных окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "parkride_service",
		},
		UserService: UserServiceConfig{
			Timeout: 5,
		},
		Pricing: PricingConfig{
			BaseRate:        50.0,
			PeakMultiplier:  1.5,
			SurgeMultiplier: 2.0,
			DailyDiscount:   0.9,
			MonthlyDiscount: 0.8,
			Timezone:        "UTC",
		},
		Pooling: PoolingConfig{
			RadiusMeters: 1000,
		},
		NoShow: NoShowConfig{
			Enabled:      true,
			Schedule:     "@every 5m",
			GraceMinutes: 30,
			BatchSize:    100,
		},
		Cache: CacheConfig{
			LotsTTL:    60,
			PricingTTL: 300,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Pricing.BaseRate <= 0 {
		return fmt.Errorf("pricing.base_rate must be positive")
	}
	if c.Pricing.PeakMultiplier <= 0 || c.Pricing.SurgeMultiplier <= 0 {
		return fmt.Errorf("pricing multipliers must be positive")
	}
	if c.Pricing.DailyDiscount <= 0 || c.Pricing.MonthlyDiscount <= 0 {
		return fmt.Errorf("pricing discounts must be positive")
	}
	if _, err := c.Pricing.Location(); err != nil {
		return fmt.Errorf("pricing.timezone: %w", err)
	}
	if c.Pooling.RadiusMeters <= 0 {
		return fmt.Errorf("pooling.radius_meters must be positive")
	}
	if c.NoShow.Enabled && c.NoShow.Schedule == "" {
		return fmt.Errorf("noshow.schedule is required")
	}
	if c.NoShow.GraceMinutes < 0 || c.NoShow.BatchSize <= 0 {
		return fmt.Errorf("noshow.grace_minutes must be >= 0 and noshow.batch_size > 0")
	}
	return nil
}

// applyEnv переопределяет секреты и адреса из окружения (.env загружается в main)
func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.UserService.URL, "USER_SERVICE_URL")
	setString(&cfg.Logs.Level, "LOG_LEVEL")
	setInt(&cfg.Server.HTTPPort, "HTTP_PORT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
