// Package handlers holds the HTTP endpoints: channel webhooks, the Daraja
// payment callback, health, and the admin API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/frankbeauty/salon-bot/internal/channels/telegram"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

// TelegramWebhookHandler receives Bot API webhook deliveries and feeds them
// through the same dispatch path the long poller uses.
type TelegramWebhookHandler struct {
	poller      *telegram.Poller
	secretToken string
	logger      *logging.Logger
}

func NewTelegramWebhookHandler(poller *telegram.Poller, secretToken string, logger *logging.Logger) *TelegramWebhookHandler {
	if poller == nil {
		panic("handlers: telegram poller required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &TelegramWebhookHandler{poller: poller, secretToken: secretToken, logger: logger}
}

// Handle processes one webhook update. Telegram retries on non-2xx, so
// malformed payloads are acknowledged and dropped rather than retried forever.
func (h *TelegramWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secretToken != "" && r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != h.secretToken {
		h.logger.Warn("telegram webhook secret mismatch", "remote_ip", r.RemoteAddr)
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn("telegram webhook decode failed", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	h.poller.HandleUpdate(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}
