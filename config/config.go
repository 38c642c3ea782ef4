package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppName  string `mapstructure:"APP_NAME"`
	Port     string `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// PostgreSQL configuration. DatabaseURL wins when set.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      int    `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSL_MODE"`

	// Sessions
	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	JWTExpiresIn time.Duration `mapstructure:"JWT_EXPIRES_IN"`
	CookieSecure bool          `mapstructure:"COOKIE_SECURE"`

	OpsAPIKey        string `mapstructure:"OPS_API_KEY"`
	CORSAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`

	// RabbitMQ configuration. Publishing is disabled when RabbitMQURL is empty.
	RabbitMQURL   string `mapstructure:"RABBITMQ_URL"`
	OrderExchange string `mapstructure:"ORDER_EXCHANGE"`

	// Ledger retry policy for lost stock races
	StockConflictRetries int           `mapstructure:"STOCK_CONFLICT_RETRIES"`
	StockRetryInterval   time.Duration `mapstructure:"STOCK_RETRY_INTERVAL"`
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "storefront-api")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "storefront")
	v.SetDefault("DB_PASSWORD", "storefront")
	v.SetDefault("DB_NAME", "storefront")
	v.SetDefault("DB_SSL_MODE", "disable")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRES_IN", "24h")
	v.SetDefault("COOKIE_SECURE", false)

	v.SetDefault("OPS_API_KEY", "")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("ORDER_EXCHANGE", "events.orders")

	v.SetDefault("STOCK_CONFLICT_RETRIES", 3)
	v.SetDefault("STOCK_RETRY_INTERVAL", "20ms")

	if err = v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Info().Msg("No config file found, using environment variables and defaults.")
			err = nil
		} else {
			log.Error().Err(err).Msg("Error reading config file")
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}
