// Package server implements the server CLI command.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"lumina/internal/infrastructure/config"
	"lumina/internal/infrastructure/database"
	"lumina/internal/infrastructure/migration"
	"lumina/internal/infrastructure/scheduler"
	httpRouter "lumina/internal/interfaces/http"
	"lumina/internal/shared/logger"
)

var (
	configPath  string
	autoMigrate bool
	noScheduler bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the lumina HTTP server together with the background renewal scheduler.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the config file")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending database migrations on startup")
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "Disable the background renewal scheduler")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "auto_migrate", autoMigrate)

	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if autoMigrate {
		sqlDB, err := database.Get().DB()
		if err != nil {
			logger.Fatal("failed to get sql connection for migrations", "error", err)
		}
		runner := migration.NewRunner(sqlDB, logger.NewLogger().Named("migration"))
		if err := runner.Up(); err != nil {
			logger.Fatal("failed to apply migrations", "error", err)
		}
	}

	redisClient := connectRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	router := httpRouter.NewRouter(database.Get(), redisClient, cfg, logger.NewLogger())

	var renewalScheduler *scheduler.RenewalScheduler
	if !noScheduler {
		interval := time.Duration(cfg.Billing.RenewalSweepMinutes) * time.Minute
		renewalScheduler = scheduler.NewRenewalScheduler(
			router.RenewDueUseCase(), interval, logger.NewLogger().Named("scheduler"))
		renewalScheduler.Start(context.Background())
		defer renewalScheduler.Stop()
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// connectRedis returns nil when Redis is unreachable; chat rate limiting is
// then disabled rather than blocking startup.
func connectRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, chat rate limiting disabled", "error", err)
		client.Close()
		return nil
	}

	logger.Info("redis connection established", "addr", cfg.Redis.GetAddr())
	return client
}
