package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/frankbeauty/salon-bot/internal/channels/whatsapp"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

// ConversationHandler processes one inbound message and returns the reply.
// Implemented by the conversation engine.
type ConversationHandler interface {
	HandleMessage(ctx context.Context, userID, platform, text string) (string, error)
}

// WhatsAppWebhookHandler serves Meta's webhook: GET for the one-time
// subscription handshake, POST for message deliveries.
type WhatsAppWebhookHandler struct {
	client      *whatsapp.Client
	engine      ConversationHandler
	verifyToken string
	appSecret   string
	logger      *logging.Logger
}

func NewWhatsAppWebhookHandler(client *whatsapp.Client, engine ConversationHandler, verifyToken, appSecret string, logger *logging.Logger) *WhatsAppWebhookHandler {
	if client == nil {
		panic("handlers: whatsapp client required")
	}
	if engine == nil {
		panic("handlers: conversation handler required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WhatsAppWebhookHandler{
		client:      client,
		engine:      engine,
		verifyToken: verifyToken,
		appSecret:   appSecret,
		logger:      logger,
	}
}

// Verify answers Meta's subscription challenge.
func (h *WhatsAppWebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == h.verifyToken {
		w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	http.Error(w, "verification failed", http.StatusForbidden)
}

// Handle processes a webhook delivery. Replies are sent synchronously; Meta
// allows several seconds before considering the delivery failed, which is
// plenty for a keyword bot.
func (h *WhatsAppWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read failed", http.StatusBadRequest)
		return
	}
	if h.appSecret != "" && !whatsapp.VerifySignature(h.appSecret, body, r.Header.Get("X-Hub-Signature-256")) {
		h.logger.Warn("whatsapp webhook signature mismatch", "remote_ip", r.RemoteAddr)
		http.Error(w, "invalid signature", http.StatusForbidden)
		return
	}

	var event whatsapp.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Warn("whatsapp webhook decode failed", "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, msg := range event.InboundTexts() {
		reply, err := h.engine.HandleMessage(r.Context(), msg.From, whatsapp.Platform, msg.Text)
		if err != nil {
			h.logger.Error("whatsapp message handling failed", "error", err, "from", msg.From)
			continue
		}
		if reply == "" {
			continue
		}
		if err := h.sendReply(r.Context(), msg.From, reply); err != nil {
			h.logger.Error("whatsapp reply send failed", "error", err, "to", msg.From)
		}
	}
	w.WriteHeader(http.StatusOK)
}

// sendReply attaches tappable payment buttons to the payment-method prompt;
// everything else goes out as plain text. Button reply ids come back through
// InboundTexts as if typed.
func (h *WhatsAppWebhookHandler) sendReply(ctx context.Context, to, reply string) error {
	if strings.Contains(reply, "M-Pesa STK Push") {
		_, err := h.client.SendButtons(ctx, to, reply, []whatsapp.ButtonReply{
			{ID: "stk push", Title: "STK Push"},
			{ID: "manual", Title: "Manual"},
			{ID: "cash", Title: "Cash at Salon"},
		})
		return err
	}
	_, err := h.client.SendText(ctx, to, reply)
	return err
}
