package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger          `mapstructure:"logger"`
	DB        Database        `mapstructure:"database"`
	API       API             `mapstructure:"api"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Cache     Cache           `mapstructure:"cache"`
	Warmup    Warmup          `mapstructure:"warmup"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port                 int     `mapstructure:"port"`
	RateLimitPerSecond   float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst       int     `mapstructure:"rate_limit_burst"`
	RequestTimeoutString string  `mapstructure:"request_timeout"`
}

// Provider holds the connection settings for one upstream market-data source.
// Credentials are injected here and nowhere else.
type Provider struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type ProvidersConfig struct {
	Finnhub           Provider `mapstructure:"finnhub"`
	Polygon           Provider `mapstructure:"polygon"`
	AlphaVantage      Provider `mapstructure:"alphavantage"`
	HistoryWindowDays int      `mapstructure:"history_window_days"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	OverviewTTL       time.Duration `mapstructure:"overview_ttl"`
}

type Warmup struct {
	Enabled        bool     `mapstructure:"enabled"`
	CronExpression string   `mapstructure:"cron_expression"`
	Tickers        []string `mapstructure:"tickers"`
	MaxConcurrency int      `mapstructure:"max_concurrency"`
}

func Load() (*Config, error) {
	// .env is optional; real deployments inject environment variables directly.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.rate_limit_per_second", 10)
	viper.SetDefault("api.rate_limit_burst", 30)

	viper.SetDefault("providers.history_window_days", 180)
	viper.SetDefault("providers.finnhub.base_url", "https://finnhub.io")
	viper.SetDefault("providers.finnhub.timeout", 10*time.Second)
	viper.SetDefault("providers.finnhub.max_request_per_minute", 60)
	viper.SetDefault("providers.polygon.base_url", "https://api.polygon.io")
	viper.SetDefault("providers.polygon.timeout", 10*time.Second)
	viper.SetDefault("providers.polygon.max_request_per_minute", 5)
	viper.SetDefault("providers.alphavantage.base_url", "https://www.alphavantage.co")
	viper.SetDefault("providers.alphavantage.timeout", 15*time.Second)
	viper.SetDefault("providers.alphavantage.max_request_per_minute", 5)

	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("cache.overview_ttl", 15*time.Minute)

	viper.SetDefault("warmup.enabled", false)
	viper.SetDefault("warmup.cron_expression", "0 6 * * 1-5")
	viper.SetDefault("warmup.max_concurrency", 2)
}
