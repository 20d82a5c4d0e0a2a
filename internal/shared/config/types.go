// Package config defines the typed configuration sections shared across the
// application. Loading happens in internal/infrastructure/config.
package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BillingConfig controls the renewal sweep and the simulated payment gateway.
type BillingConfig struct {
	// PaymentSuccessRate is the probability a simulated charge succeeds.
	PaymentSuccessRate float64 `mapstructure:"payment_success_rate"`
	// RenewalSweepMinutes is the interval between renewal sweeps.
	RenewalSweepMinutes int `mapstructure:"renewal_sweep_minutes"`
	// RenewalBatchSize caps how many due bundles a single sweep processes.
	RenewalBatchSize int `mapstructure:"renewal_batch_size"`
}

// ChatConfig controls the chat endpoint behavior.
type ChatConfig struct {
	// RateLimitPerMinute is the per-user send limit; 0 disables limiting.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
	HistoryDefaultSize int `mapstructure:"history_default_size"`
	HistoryMaxSize     int `mapstructure:"history_max_size"`
}
