package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Profile   ProfileConfig   `mapstructure:"profile"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// DatabaseConfig configures the optional Postgres journal. Ledger state is
// always rebuilt from the seed at start; the journal is write-only.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
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

// RedisConfig configures the optional idempotency cache and rate limiter.
type RedisConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Host        string        `mapstructure:"host"`
	Port        int           `mapstructure:"port"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	PoolSize    int           `mapstructure:"pool_size"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// LedgerConfig holds the simulated authorization delays, fee values and rates.
type LedgerConfig struct {
	SendDelay          time.Duration     `mapstructure:"send_delay"`
	ConvertDelay       time.Duration     `mapstructure:"convert_delay"`
	TopupDelay         time.Duration     `mapstructure:"topup_delay"`
	TransferFeeFlat    string            `mapstructure:"transfer_fee_flat"`
	ExchangeFeePercent string            `mapstructure:"exchange_fee_percent"`
	SeedDemoData       bool              `mapstructure:"seed_demo_data"`
	IdempotencyTTL     time.Duration     `mapstructure:"idempotency_ttl"`
	ListenerTimeout    time.Duration     `mapstructure:"listener_timeout"`
	RatesPerUSD        map[string]string `mapstructure:"rates_per_usd"`
}

// TransferFee parses the flat fee charged on outgoing transfers.
func (l LedgerConfig) TransferFee() (decimal.Decimal, error) {
	return parseNonNegative("ledger.transfer_fee_flat", l.TransferFeeFlat)
}

// ExchangeFee parses the fractional fee charged on conversions (0.005 = 0.5%).
func (l LedgerConfig) ExchangeFee() (decimal.Decimal, error) {
	return parseNonNegative("ledger.exchange_fee_percent", l.ExchangeFeePercent)
}

// Rates parses the per-USD rate table. Keys are currency codes in any case.
func (l LedgerConfig) Rates() (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(l.RatesPerUSD))
	for code, raw := range l.RatesPerUSD {
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("ledger.rates_per_usd.%s: %w", code, err)
		}
		out[strings.ToUpper(code)] = d
	}
	return out, nil
}

func parseNonNegative(key, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

// AssistantConfig configures the generative language service behind the chat assistant.
type AssistantConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ProfileConfig struct {
	Name    string `mapstructure:"name"`
	Premium bool   `mapstructure:"premium"`
}

// Load reads configuration from .env, file and environment variables.
// Environment variables override file values. Prefix: ZRH_.
// Nested keys use underscore: ZRH_LEDGER_SEND_DELAY, ZRH_ASSISTANT_API_KEY, etc.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "zerah_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("ledger.send_delay", "2s")
	v.SetDefault("ledger.convert_delay", "1500ms")
	v.SetDefault("ledger.topup_delay", "1500ms")
	v.SetDefault("ledger.transfer_fee_flat", "2.50")
	v.SetDefault("ledger.exchange_fee_percent", "0.005")
	v.SetDefault("ledger.seed_demo_data", true)
	v.SetDefault("ledger.idempotency_ttl", "24h")
	v.SetDefault("ledger.listener_timeout", "5s")
	v.SetDefault("ledger.rates_per_usd", map[string]string{
		"USD": "1",
		"EUR": "0.83",
		"GBP": "0.73",
		"NGN": "1450",
	})
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.model", "gemini-3-flash-preview")
	v.SetDefault("assistant.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("assistant.timeout", "30s")
	v.SetDefault("profile.name", "Zerah User")
	v.SetDefault("profile.premium", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("ZRH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
