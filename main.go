package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dmetrikx/learnkeybot/internal/bot"
	"github.com/Dmetrikx/learnkeybot/internal/config"
	"github.com/Dmetrikx/learnkeybot/internal/logging"
)

// runner is the lifecycle run drives
type runner interface {
	Start(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	newLogger = logging.NewLogger
	newBot    = func(cfg *config.Config, logger *slog.Logger) (runner, error) {
		b, err := bot.NewBot(cfg, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run owns every deferred cleanup, so the log file is closed before main
// picks the exit code.
func run(cfg *config.Config) error {
	logger, closeLog := newLogger(logging.Options{
		Format: cfg.LogFormat,
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
	})
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.InfoContext(ctx, "starting bot",
		"backend", cfg.Backend,
		"model", cfg.Model,
		"update_interval", cfg.UpdateInterval.String(),
		"max_concurrent_sessions", cfg.MaxConcurrentSessions)

	// Create bot
	b, err := newBot(cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create bot", "error", err)
		return fmt.Errorf("create bot: %w", err)
	}

	// Start bot
	if err := b.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to start bot", "error", err)
		return fmt.Errorf("start bot: %w", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	logger.InfoContext(ctx, "bot is now running, press CTRL-C to exit")
	<-ctx.Done()

	logger.InfoContext(context.Background(), "shutting down bot")
	if err := b.Close(context.Background()); err != nil {
		logger.ErrorContext(context.Background(), "error closing bot", "error", err)
	}

	return nil
}
