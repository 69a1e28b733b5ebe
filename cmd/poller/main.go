// The poller runs the bot over Telegram long polling, for development and for
// deployments without a public HTTPS endpoint. The API server's webhook and
// the poller are mutually exclusive; run one or the other.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/frankbeauty/salon-bot/internal/app"
	"github.com/frankbeauty/salon-bot/internal/channels/telegram"
	appconfig "github.com/frankbeauty/salon-bot/internal/config"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting salon-bot telegram poller", "env", cfg.Env)

	if cfg.TelegramToken == "" {
		logger.Error("TELEGRAM_TOKEN is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	// The HTTP timeout must outlast the long-poll window.
	a.Telegram.SetHTTPClient(&http.Client{Timeout: cfg.TelegramPollTimeout + 10*time.Second})
	poller := telegram.NewPoller(a.Telegram, a.Engine, logger).
		WithPollTimeout(cfg.TelegramPollTimeout)

	logger.Info("polling for updates", "timeout", cfg.TelegramPollTimeout)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("poller stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("poller stopped")
}
