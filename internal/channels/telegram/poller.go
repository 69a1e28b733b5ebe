package telegram

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/frankbeauty/salon-bot/pkg/logging"
)

// Platform is the identifier stored with sessions and customers.
const Platform = "telegram"

// Handler processes one inbound message and returns the reply text.
// Implemented by the conversation engine.
type Handler interface {
	HandleMessage(ctx context.Context, userID, platform, text string) (string, error)
}

// Poller drives the bot over getUpdates long polling. Used in development and
// for deployments without a public HTTPS endpoint; production uses the webhook.
type Poller struct {
	client      *Client
	handler     Handler
	logger      *logging.Logger
	pollTimeout time.Duration
}

func NewPoller(client *Client, handler Handler, logger *logging.Logger) *Poller {
	if client == nil {
		panic("telegram: client required")
	}
	if handler == nil {
		panic("telegram: handler required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Poller{
		client:      client,
		handler:     handler,
		logger:      logger,
		pollTimeout: 30 * time.Second,
	}
}

func (p *Poller) WithPollTimeout(d time.Duration) *Poller {
	if d > 0 {
		p.pollTimeout = d
	}
	return p
}

// Run polls until ctx is cancelled. Updates are processed in order, one at a
// time; the engine serializes per-user state anyway and salon traffic does not
// justify a worker pool here.
func (p *Poller) Run(ctx context.Context) error {
	// A webhook and getUpdates are mutually exclusive on the Bot API.
	if err := p.client.DeleteWebhook(ctx); err != nil {
		p.logger.Warn("webhook delete failed, polling may conflict", "error", err)
	}

	var offset int64
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		updates, err := p.client.GetUpdates(ctx, offset, p.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("getUpdates failed", "error", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			p.handleUpdate(ctx, u)
		}
	}
}

// HandleUpdate processes a single update. Exported so the webhook handler can
// share the exact same dispatch logic.
func (p *Poller) HandleUpdate(ctx context.Context, u Update) {
	p.handleUpdate(ctx, u)
}

func (p *Poller) handleUpdate(ctx context.Context, u Update) {
	var chatID int64
	var text string

	switch {
	case u.CallbackQuery != nil:
		if err := p.client.AnswerCallbackQuery(ctx, u.CallbackQuery.ID); err != nil {
			p.logger.Warn("callback ack failed", "error", err)
		}
		if u.CallbackQuery.Message == nil {
			return
		}
		chatID = u.CallbackQuery.Message.Chat.ID
		text = u.CallbackQuery.Data
	case u.Message != nil && u.Message.Text != "":
		if u.Message.From != nil && u.Message.From.IsBot {
			return
		}
		chatID = u.Message.Chat.ID
		text = u.Message.Text
	default:
		return
	}

	if text == "/start" {
		text = "hi"
	}

	userID := strconv.FormatInt(chatID, 10)
	reply, err := p.handler.HandleMessage(ctx, userID, Platform, text)
	if err != nil {
		p.logger.Error("message handling failed", "error", err, "chat_id", chatID)
		return
	}
	if reply == "" {
		return
	}
	if err := p.sendReply(ctx, chatID, text, reply); err != nil {
		p.logger.Error("reply send failed", "error", err, "chat_id", chatID)
	}
}

// sendReply attaches the quick-action keyboard to greetings so new users can
// tap instead of type, and the payment keyboard to the payment-method prompt;
// everything else goes out as plain text.
func (p *Poller) sendReply(ctx context.Context, chatID int64, inbound, reply string) error {
	switch {
	case inbound == "hi":
		return p.client.SendMessageWithKeyboard(ctx, chatID, reply, MainMenuKeyboard())
	case strings.Contains(reply, "M-Pesa STK Push"):
		return p.client.SendMessageWithKeyboard(ctx, chatID, reply, PaymentKeyboard())
	default:
		return p.client.SendMessage(ctx, chatID, reply)
	}
}

// MainMenuKeyboard offers the common first actions; callback data is fed back
// through the engine as if the customer had typed it.
func MainMenuKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{
			{Text: "💇 Services", CallbackData: "services"},
			{Text: "💰 Prices", CallbackData: "prices"},
		},
		{
			{Text: "📅 Book", CallbackData: "book appointment"},
			{Text: "📍 Location", CallbackData: "location"},
		},
	}}
}

// PaymentKeyboard offers the three payment methods; the callback data goes
// through the engine's awaiting-payment handler as typed text would.
func PaymentKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		{
			{Text: "📲 STK Push", CallbackData: "stk push"},
			{Text: "📋 Manual", CallbackData: "manual"},
		},
		{
			{Text: "💵 Cash at Salon", CallbackData: "cash"},
		},
	}}
}
