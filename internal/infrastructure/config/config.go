// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedconfig "lumina/internal/shared/config"
)

// Config is the root configuration of the service.
type Config struct {
	Server   sharedconfig.ServerConfig   `mapstructure:"server"`
	Database sharedconfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedconfig.LoggerConfig   `mapstructure:"logger"`
	Redis    sharedconfig.RedisConfig    `mapstructure:"redis"`
	Billing  sharedconfig.BillingConfig  `mapstructure:"billing"`
	Chat     sharedconfig.ChatConfig     `mapstructure:"chat"`
}

var (
	cfg   *Config
	cfgMu sync.RWMutex
)

// Load reads configuration from the given file (optional) and the
// environment. Environment variables use the LUMINA_ prefix with
// underscores, for example LUMINA_DATABASE_HOST.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("LUMINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&c); err != nil {
		return nil, err
	}

	cfgMu.Lock()
	cfg = &c
	cfgMu.Unlock()

	return &c, nil
}

// Get returns the loaded configuration. It panics when Load has not run.
func Get() *Config {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	if cfg == nil {
		panic("config not loaded, call config.Load first")
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "lumina")
	v.SetDefault("database.database", "lumina")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	// Logger
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	// Billing
	v.SetDefault("billing.payment_success_rate", 0.9)
	v.SetDefault("billing.renewal_sweep_minutes", 60)
	v.SetDefault("billing.renewal_batch_size", 100)

	// Chat
	v.SetDefault("chat.rate_limit_per_minute", 30)
	v.SetDefault("chat.history_default_size", 50)
	v.SetDefault("chat.history_max_size", 200)
}

func validate(c *Config) error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Billing.PaymentSuccessRate < 0 || c.Billing.PaymentSuccessRate > 1 {
		return fmt.Errorf("payment success rate must be in [0, 1], got %f", c.Billing.PaymentSuccessRate)
	}
	if c.Billing.RenewalSweepMinutes <= 0 {
		return fmt.Errorf("renewal sweep interval must be positive, got %d", c.Billing.RenewalSweepMinutes)
	}
	if c.Chat.HistoryMaxSize < c.Chat.HistoryDefaultSize {
		return fmt.Errorf("chat history max size %d is below the default size %d",
			c.Chat.HistoryMaxSize, c.Chat.HistoryDefaultSize)
	}
	return nil
}
