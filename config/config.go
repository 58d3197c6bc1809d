package config

import (
	"fmt"
	"strings"
	"time"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger       `mapstructure:"logger"`
	API          API          `mapstructure:"api"`
	Allocation   Allocation   `mapstructure:"allocation"`
	Discovery    Discovery    `mapstructure:"discovery"`
	Marketaux    Marketaux    `mapstructure:"marketaux"`
	YahooFinance YahooFinance `mapstructure:"yahoo_finance"`
	Cache        Cache        `mapstructure:"cache"`
	DB           Database     `mapstructure:"database"`
	Scheduler    Scheduler    `mapstructure:"scheduler"`
	Telegram     Telegram     `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level" validate:"required"`
	Encoding string `mapstructure:"encoding" validate:"oneof=json console"`
}

type API struct {
	Port              int           `mapstructure:"port" validate:"gt=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int           `mapstructure:"burst" validate:"gt=0"`
	LimiterExpiresIn  time.Duration `mapstructure:"limiter_expires_in"`
}

// Allocation tunes the trade-list engine.
type Allocation struct {
	MaxShares        int           `mapstructure:"max_shares" validate:"gt=0"`
	SellThreshold    float64       `mapstructure:"sell_threshold" validate:"lte=0"`
	ShrinkDelay      time.Duration `mapstructure:"shrink_delay" validate:"gte=0"`
	PriceConcurrency int           `mapstructure:"price_concurrency" validate:"gt=0"`
	AggregateBasis   string        `mapstructure:"aggregate_basis" validate:"oneof=score shares"`
}

type Discovery struct {
	TrendingURL    string        `mapstructure:"trending_url" validate:"required,url"`
	Count          int           `mapstructure:"count" validate:"gte=0"`
	RowSelector    string        `mapstructure:"row_selector" validate:"required"`
	SymbolSelector string        `mapstructure:"symbol_selector" validate:"required"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type Marketaux struct {
	BaseURL             string        `mapstructure:"base_url" validate:"required,url"`
	APIToken            string        `mapstructure:"api_token"`
	Countries           string        `mapstructure:"countries"`
	Language            string        `mapstructure:"language"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"gt=0"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url" validate:"required,url"`
	QuoteBaseURL        string        `mapstructure:"quote_base_url" validate:"required,url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"gt=0"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
	PriceTTL          time.Duration `mapstructure:"price_ttl"`
}

type Database struct {
	Enabled         bool   `mapstructure:"enabled"`
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

// Scheduler drives unattended runs in the start command.
// An empty Cron disables it.
type Scheduler struct {
	Cron            string        `mapstructure:"cron"`
	Budget          float64       `mapstructure:"budget" validate:"gte=0"`
	ExtraTickers    []string      `mapstructure:"extra_tickers"`
	DateOffsetDays  int           `mapstructure:"date_offset_days" validate:"gte=0"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

type Telegram struct {
	BotToken                  string        `mapstructure:"bot_token"`
	ChatID                    int64         `mapstructure:"chat_id"`
	TimeoutDuration           time.Duration `mapstructure:"timeout_duration"`
	MaxGlobalRequestPerSecond int           `mapstructure:"max_global_request_per_second" validate:"gt=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")

	v.SetDefault("api.port", 8080)
	v.SetDefault("api.requests_per_second", 1)
	v.SetDefault("api.burst", 5)
	v.SetDefault("api.limiter_expires_in", 3*time.Minute)

	v.SetDefault("allocation.max_shares", 15)
	v.SetDefault("allocation.sell_threshold", -0.1)
	v.SetDefault("allocation.shrink_delay", 100*time.Millisecond)
	v.SetDefault("allocation.price_concurrency", 4)
	v.SetDefault("allocation.aggregate_basis", "score")

	v.SetDefault("discovery.trending_url", "https://finance.yahoo.com/trending-tickers/")
	v.SetDefault("discovery.count", 20)
	v.SetDefault("discovery.row_selector", "tbody tr")
	v.SetDefault("discovery.symbol_selector", `td[aria-label="Symbol"] a`)
	v.SetDefault("discovery.timeout", 30*time.Second)

	v.SetDefault("marketaux.base_url", "https://api.marketaux.com")
	v.SetDefault("marketaux.api_token", "")
	v.SetDefault("marketaux.countries", "us")
	v.SetDefault("marketaux.language", "")
	v.SetDefault("marketaux.timeout", 30*time.Second)
	v.SetDefault("marketaux.max_request_per_minute", 60)

	v.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	v.SetDefault("yahoo_finance.quote_base_url", "https://finance.yahoo.com/quote")
	v.SetDefault("yahoo_finance.timeout", 15*time.Second)
	v.SetDefault("yahoo_finance.max_request_per_minute", 120)

	v.SetDefault("cache.default_expiration", 10*time.Minute)
	v.SetDefault("cache.cleanup_interval", 15*time.Minute)
	v.SetDefault("cache.price_ttl", 5*time.Minute)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "sentiment_trading")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.time_zone", "UTC")
	v.SetDefault("database.log_level", "Warn")

	v.SetDefault("scheduler.cron", "")
	v.SetDefault("scheduler.budget", 0)
	v.SetDefault("scheduler.extra_tickers", []string{})
	v.SetDefault("scheduler.date_offset_days", 1)
	v.SetDefault("scheduler.timeout_duration", 10*time.Minute)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.timeout_duration", 10*time.Second)
	v.SetDefault("telegram.max_global_request_per_second", 1)
}

// Load reads config.yaml from the working directory (or configPath when set),
// overlays environment variables and validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags on the whole tree.
func Validate(cfg *Config) error {
	if err := goValidator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
