// Package app wires the application graph shared by the API server and the
// Telegram poller: config, storage, channel clients, payments and the
// conversation engine.
package app

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/frankbeauty/salon-bot/internal/bookings"
	"github.com/frankbeauty/salon-bot/internal/channels/telegram"
	"github.com/frankbeauty/salon-bot/internal/channels/whatsapp"
	"github.com/frankbeauty/salon-bot/internal/config"
	"github.com/frankbeauty/salon-bot/internal/conversation"
	"github.com/frankbeauty/salon-bot/internal/observability/metrics"
	"github.com/frankbeauty/salon-bot/internal/payments"
	"github.com/frankbeauty/salon-bot/internal/payments/mpesa"
	"github.com/frankbeauty/salon-bot/internal/session"
	"github.com/frankbeauty/salon-bot/internal/templates"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

// App is the assembled dependency graph.
type App struct {
	Config   *config.Config
	Logger   *logging.Logger
	DB       *sql.DB
	Sessions session.Store
	Bank     *templates.Bank
	Engine   *conversation.Engine

	Bookings *bookings.Repository
	Payments *payments.Service

	Telegram *telegram.Client
	WhatsApp *whatsapp.Client

	BotMetrics     *metrics.BotMetrics
	PaymentMetrics *metrics.PaymentMetrics

	redis *redis.Client
}

// New builds the full graph from config. Channel clients are only created for
// channels that have credentials, so a Telegram-only deployment needs no
// WhatsApp setup.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*App, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("app: DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("app: open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("app: ping database: %w", err)
	}

	a := &App{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		Bank:           templates.NewBank(nil),
		BotMetrics:     metrics.NewBotMetrics(nil),
		PaymentMetrics: metrics.NewPaymentMetrics(nil),
	}

	if cfg.UseMemorySessions {
		a.Sessions = session.NewMemoryStore()
		logger.Info("using in-memory sessions")
	} else {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		a.redis = redis.NewClient(opts)
		if err := a.redis.Ping(ctx).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("app: ping redis: %w", err)
		}
		a.Sessions = session.NewRedisStore(a.redis, nil)
	}

	a.Bookings = bookings.NewRepository(db)
	bookingSvc := bookings.NewService(a.Bookings, logger)

	daraja := mpesa.NewClient(mpesa.Config{
		ConsumerKey:    cfg.MpesaConsumerKey,
		ConsumerSecret: cfg.MpesaConsumerSecret,
		Shortcode:      cfg.MpesaShortcode,
		Passkey:        cfg.MpesaPasskey,
		CallbackURL:    cfg.MpesaCallbackURL,
		Environment:    cfg.MpesaEnvironment,
	}, logger).WithMetrics(a.PaymentMetrics)

	if cfg.TelegramToken != "" {
		a.Telegram = telegram.NewClient(cfg.TelegramToken)
	}
	if cfg.WhatsAppAccessToken != "" && cfg.WhatsAppBusinessNumber != "" {
		a.WhatsApp = whatsapp.NewClient(cfg.WhatsAppAccessToken, cfg.WhatsAppBusinessNumber)
		a.WhatsApp.SetAPIVersion(cfg.WhatsAppAPIVersion)
	}

	a.Payments = payments.NewService(daraja, a.Bookings, logger).
		WithNotifier(&channelNotifier{app: a}, a.Sessions, a.Bank).
		WithMetrics(a.PaymentMetrics)

	a.Engine = conversation.NewEngine(a.Sessions, a.Bank, bookingSvc, a.Payments, logger).
		WithSessionTimeout(cfg.SessionTimeout).
		WithViewedWindow(cfg.ServicesViewedWindow).
		WithPaybill(cfg.MpesaShortcode).
		WithDepositAmount(cfg.DepositAmountKES).
		WithMetrics(a.BotMetrics)

	return a, nil
}

// Close releases storage connections.
func (a *App) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// channelNotifier routes an outbound message to whichever channel the
// customer came in on.
type channelNotifier struct {
	app *App
}

func (n *channelNotifier) SendText(ctx context.Context, platform, userID, text string) error {
	switch platform {
	case telegram.Platform:
		if n.app.Telegram == nil {
			return fmt.Errorf("app: telegram not configured")
		}
		chatID, err := strconv.ParseInt(userID, 10, 64)
		if err != nil {
			return fmt.Errorf("app: bad telegram chat id %q: %w", userID, err)
		}
		return n.app.Telegram.SendMessage(ctx, chatID, text)
	case whatsapp.Platform:
		if n.app.WhatsApp == nil {
			return fmt.Errorf("app: whatsapp not configured")
		}
		_, err := n.app.WhatsApp.SendText(ctx, userID, text)
		return err
	default:
		return fmt.Errorf("app: unknown platform %q", platform)
	}
}
