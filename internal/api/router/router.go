// Package router assembles the chi router for the API process.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/frankbeauty/salon-bot/internal/http/handlers"
	httpmiddleware "github.com/frankbeauty/salon-bot/internal/http/middleware"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

// Config holds router configuration. Nil handlers leave their routes
// unregistered, so a deployment can run Telegram-only or WhatsApp-only.
type Config struct {
	Logger *logging.Logger

	Health          *handlers.HealthHandler
	TelegramWebhook *handlers.TelegramWebhookHandler
	WhatsAppWebhook *handlers.WhatsAppWebhookHandler
	MpesaCallback   *handlers.MpesaCallbackHandler

	AdminAppointments *handlers.AdminAppointmentsHandler
	AdminPayments     *handlers.AdminPaymentsHandler
	AdminSessions     *handlers.AdminSessionsHandler
	AdminJWTSecret    string

	MetricsHandler http.Handler
}

// New creates a chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints: webhooks authenticate themselves (secret token,
	// signature) rather than via middleware.
	r.Group(func(public chi.Router) {
		if cfg.Health != nil {
			public.Get("/health", cfg.Health.Handle)
		}
		if cfg.TelegramWebhook != nil {
			public.Post("/webhooks/telegram", cfg.TelegramWebhook.Handle)
		}
		if cfg.WhatsAppWebhook != nil {
			public.Get("/webhooks/whatsapp", cfg.WhatsAppWebhook.Verify)
			public.Post("/webhooks/whatsapp", cfg.WhatsAppWebhook.Handle)
		}
		if cfg.MpesaCallback != nil {
			public.Post("/webhooks/mpesa/callback", cfg.MpesaCallback.Handle)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	if cfg.AdminAppointments != nil || cfg.AdminPayments != nil || cfg.AdminSessions != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret))
			if cfg.AdminAppointments != nil {
				admin.Get("/appointments", cfg.AdminAppointments.List)
			}
			if cfg.AdminPayments != nil {
				admin.Get("/payments", cfg.AdminPayments.List)
				admin.Get("/payments/{checkoutRequestID}/status", cfg.AdminPayments.Status)
			}
			if cfg.AdminSessions != nil {
				admin.Get("/sessions/{userID}", cfg.AdminSessions.Get)
			}
		})
	}

	return r
}
