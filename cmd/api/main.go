package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/frankbeauty/salon-bot/internal/api/router"
	"github.com/frankbeauty/salon-bot/internal/app"
	"github.com/frankbeauty/salon-bot/internal/channels/telegram"
	appconfig "github.com/frankbeauty/salon-bot/internal/config"
	"github.com/frankbeauty/salon-bot/internal/http/handlers"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting salon-bot API server", "env", cfg.Env, "port", cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	routerCfg := &router.Config{
		Logger:            logger,
		Health:            handlers.NewHealthHandler(a.DB),
		MpesaCallback:     handlers.NewMpesaCallbackHandler(a.Payments, logger),
		AdminAppointments: handlers.NewAdminAppointmentsHandler(a.Bookings, logger),
		AdminPayments:     handlers.NewAdminPaymentsHandler(a.Bookings, logger).WithStatusQuerier(a.Payments),
		AdminSessions:     handlers.NewAdminSessionsHandler(a.Sessions, logger),
		AdminJWTSecret:    cfg.AdminJWTSecret,
		MetricsHandler:    promhttp.Handler(),
	}

	if a.Telegram != nil {
		poller := telegram.NewPoller(a.Telegram, a.Engine, logger)
		routerCfg.TelegramWebhook = handlers.NewTelegramWebhookHandler(poller, cfg.TelegramWebhookSecret, logger)
		if cfg.PublicBaseURL != "" {
			url := cfg.PublicBaseURL + "/webhooks/telegram"
			if err := a.Telegram.SetWebhook(ctx, url, cfg.TelegramWebhookSecret); err != nil {
				logger.Error("telegram webhook registration failed", "error", err, "url", url)
			} else {
				logger.Info("telegram webhook registered", "url", url)
			}
		}
	}
	if a.WhatsApp != nil {
		routerCfg.WhatsAppWebhook = handlers.NewWhatsAppWebhookHandler(
			a.WhatsApp, a.Engine, cfg.WhatsAppVerifyToken, cfg.WhatsAppAppSecret, logger)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
