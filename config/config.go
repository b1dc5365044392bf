package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Treasury   TreasuryConfig   `mapstructure:"treasury"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Observer   ObserverConfig   `mapstructure:"observer"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, memory
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// AuthConfig tunes signed-request verification.
type AuthConfig struct {
	MaxTimestampDrift time.Duration `mapstructure:"max_timestamp_drift"`
	NonceTTL          time.Duration `mapstructure:"nonce_ttl"`
}

// TreasuryConfig holds the construction parameters applied once on first boot.
// Amounts are base-10 strings in the smallest currency unit.
type TreasuryConfig struct {
	Admin          string        `mapstructure:"admin"`
	DailyLimit     string        `mapstructure:"daily_limit"`
	Window         time.Duration `mapstructure:"window"`
	Payees         []string      `mapstructure:"payees"`
	Whitelisted    []bool        `mapstructure:"whitelisted"`
	InitialFunding string        `mapstructure:"initial_funding"`
}

// SettlementConfig points at the custodian that executes payouts.
// An empty URL keeps payouts on the internal ledger only.
type SettlementConfig struct {
	URL     string        `mapstructure:"url"`
	Secret  string        `mapstructure:"secret"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ObserverConfig points at the webhook that receives committed events.
type ObserverConfig struct {
	URL    string `mapstructure:"url"`
	Secret string `mapstructure:"secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PTR_ (Payee TReasury).
// Nested keys use underscore: PTR_DATABASE_HOST, PTR_TREASURY_ADMIN, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payee_treasury")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "1h")
	v.SetDefault("jwt.issuer", "payee-treasury")
	v.SetDefault("auth.max_timestamp_drift", "60s")
	v.SetDefault("auth.nonce_ttl", "120s")
	v.SetDefault("treasury.admin", "")
	v.SetDefault("treasury.daily_limit", "1000000000000000000")
	v.SetDefault("treasury.window", "24h")
	v.SetDefault("treasury.payees", []string{})
	v.SetDefault("treasury.whitelisted", []bool{})
	v.SetDefault("treasury.initial_funding", "0")
	v.SetDefault("settlement.url", "")
	v.SetDefault("settlement.secret", "")
	v.SetDefault("settlement.timeout", "10s")
	v.SetDefault("observer.url", "")
	v.SetDefault("observer.secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PTR_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PTR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Storage.Driver != "postgres" && cfg.Storage.Driver != "memory" {
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	return &cfg, nil
}
