package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Broker types
const (
	BrokerRedis    = "redis"
	BrokerRocketMQ = "rocketmq"
	BrokerMemory   = "memory"
)

// EnvPrefix is the prefix of environment overrides, e.g. LINKPULSE_STORAGE_BATCH_SIZE
const EnvPrefix = "LINKPULSE"

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Broker     BrokerConfig     `mapstructure:"broker"`
	RocketMQ   RocketMQConfig   `mapstructure:"rocketmq"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Aggregator AggregatorConfig `mapstructure:"aggregator"`
	GeoIP      GeoIPConfig      `mapstructure:"geoip"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig represents MySQL configuration
type MySQLConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// BrokerConfig selects the click event transport
type BrokerConfig struct {
	Type    string `mapstructure:"type"`
	Channel string `mapstructure:"channel"`
}

// RocketMQConfig represents RocketMQ configuration
type RocketMQConfig struct {
	NameServer string `mapstructure:"nameserver"`
	Group      string `mapstructure:"group"`
}

// StorageConfig controls the click buffer
type StorageConfig struct {
	Batching      bool          `mapstructure:"batching"`
	BatchSize     int           `mapstructure:"batch_size"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

// AggregatorConfig controls the rollup jobs
type AggregatorConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	HourlyInterval time.Duration `mapstructure:"hourly_interval"`
	DailyInterval  time.Duration `mapstructure:"daily_interval"`
	HoursBack      int           `mapstructure:"hours_back"`
	DaysBack       int           `mapstructure:"days_back"`
	TopN           int           `mapstructure:"top_n"`
}

// GeoIPConfig controls click enrichment
type GeoIPConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	DatabasePath string        `mapstructure:"database_path"`
	APIURL       string        `mapstructure:"api_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// Load loads configuration from file. Environment variables override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Database.Redis.Password = expandEnv(v, cfg.Database.Redis.Password)
	cfg.Database.MySQL.DSN = expandEnv(v, cfg.Database.MySQL.DSN)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the values the pipeline cannot run without
func (c *Config) Validate() error {
	var errs []error

	switch c.Broker.Type {
	case BrokerRedis, BrokerRocketMQ, BrokerMemory:
	default:
		errs = append(errs, fmt.Errorf("broker.type %q is not one of redis, rocketmq, memory", c.Broker.Type))
	}
	if c.Broker.Channel == "" {
		errs = append(errs, errors.New("broker.channel is required"))
	}
	if c.Broker.Type == BrokerRocketMQ && c.RocketMQ.NameServer == "" {
		errs = append(errs, errors.New("rocketmq.nameserver is required for the rocketmq broker"))
	}
	if c.Storage.BatchSize <= 0 {
		errs = append(errs, errors.New("storage.batch_size must be positive"))
	}
	if c.Storage.FlushInterval <= 0 {
		errs = append(errs, errors.New("storage.flush_interval must be positive"))
	}
	if c.Aggregator.HourlyInterval <= 0 || c.Aggregator.DailyInterval <= 0 {
		errs = append(errs, errors.New("aggregator intervals must be positive"))
	}
	if c.Aggregator.HoursBack <= 0 || c.Aggregator.DaysBack <= 0 {
		errs = append(errs, errors.New("aggregator look-back windows must be positive"))
	}
	if c.Aggregator.TopN <= 0 {
		errs = append(errs, errors.New("aggregator.top_n must be positive"))
	}

	return errors.Join(errs...)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("database.mysql.max_open_conns", 20)
	v.SetDefault("database.mysql.max_idle_conns", 10)
	v.SetDefault("database.mysql.auto_migrate", true)

	v.SetDefault("broker.type", BrokerRedis)
	v.SetDefault("broker.channel", "linkpulse:clicks")
	v.SetDefault("rocketmq.group", "linkpulse_consumer_group")

	v.SetDefault("storage.batching", true)
	v.SetDefault("storage.batch_size", 100)
	v.SetDefault("storage.flush_interval", 5*time.Second)

	v.SetDefault("aggregator.enabled", true)
	v.SetDefault("aggregator.hourly_interval", 5*time.Minute)
	v.SetDefault("aggregator.daily_interval", time.Hour)
	v.SetDefault("aggregator.hours_back", 2)
	v.SetDefault("aggregator.days_back", 2)
	v.SetDefault("aggregator.top_n", 10)

	v.SetDefault("geoip.enabled", true)
	v.SetDefault("geoip.api_url", "http://ip-api.com/json")
	v.SetDefault("geoip.timeout", 2*time.Second)
	v.SetDefault("geoip.cache_ttl", 24*time.Hour)
}

// expandEnv expands a "${NAME}" placeholder from the environment
func expandEnv(v *viper.Viper, s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		envKey := s[2 : len(s)-1]
		_ = v.BindEnv(envKey, envKey)
		return v.GetString(envKey)
	}
	return s
}
