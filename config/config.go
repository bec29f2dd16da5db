package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger          `mapstructure:"logger"`
	API       API             `mapstructure:"api"`
	Scheduler Scheduler       `mapstructure:"scheduler"`
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
	Signal    SignalConfig    `mapstructure:"signal"`
	Cache     Cache           `mapstructure:"cache"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

type Scheduler struct {
	DailyCron    string        `mapstructure:"daily_cron" validate:"required"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"min=1000000"`
}

type CoinGeckoConfig struct {
	BaseURL             string        `mapstructure:"base_url" validate:"required,url"`
	CoinID              string        `mapstructure:"coin_id" validate:"required"`
	VsCurrency          string        `mapstructure:"vs_currency" validate:"required"`
	APIKey              string        `mapstructure:"api_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute" validate:"min=1"`
}

type SignalConfig struct {
	RSIPeriod         int     `mapstructure:"rsi_period" validate:"min=1"`
	OversoldThreshold float64 `mapstructure:"oversold_threshold" validate:"gte=0,lte=100"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// TelegramConfig carries the notification credentials. BotToken and ChatID
// are deliberately not validated as required: when either is missing the
// scheduler disables itself instead of refusing to start.
type TelegramConfig struct {
	BotToken string        `mapstructure:"bot_token"`
	ChatID   string        `mapstructure:"chat_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("scheduler.daily_cron", "0 9 * * *")
	viper.SetDefault("scheduler.poll_interval", time.Minute)
	viper.SetDefault("coingecko.base_url", "https://api.coingecko.com")
	viper.SetDefault("coingecko.coin_id", "bitcoin")
	viper.SetDefault("coingecko.vs_currency", "usd")
	viper.SetDefault("coingecko.api_key", "")
	viper.SetDefault("coingecko.timeout", 10*time.Second)
	viper.SetDefault("coingecko.max_request_per_minute", 10)
	viper.SetDefault("signal.rsi_period", 14)
	viper.SetDefault("signal.oversold_threshold", 30.0)
	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("telegram.timeout", 10*time.Second)
	// Secrets default to empty so viper knows the keys; AutomaticEnv only
	// resolves env vars for keys it has seen, and env is the primary way
	// these are supplied.
	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.chat_id", "")
}

func Load() (*Config, error) {
	// Best effort; a missing .env file is fine in containerized deploys.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
