// Package telegram is a minimal Bot API client: sending replies (optionally
// with inline keyboards), long-polling getUpdates for development, and webhook
// management for production.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultAPIBase     = "https://api.telegram.org"
	defaultHTTPTimeout = 10 * time.Second
)

// Client calls the Telegram Bot API.
type Client struct {
	token      string
	apiBase    string
	httpClient *http.Client
}

// NewClient creates a Bot API client for the given bot token.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		apiBase:    defaultAPIBase,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// SetAPIBase overrides the Bot API base URL (useful for testing).
func (c *Client) SetAPIBase(base string) {
	c.apiBase = base
}

// SetHTTPClient replaces the HTTP client; long polling needs a timeout longer
// than the poll window.
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.httpClient = h
	}
}

// SendMessage sends Markdown-formatted text to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	return c.sendMessage(ctx, sendMessageRequest{ChatID: chatID, Text: text, ParseMode: "Markdown"})
}

// SendMessageWithKeyboard sends text with inline buttons attached.
func (c *Client) SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard *InlineKeyboardMarkup) error {
	return c.sendMessage(ctx, sendMessageRequest{ChatID: chatID, Text: text, ParseMode: "Markdown", ReplyMarkup: keyboard})
}

func (c *Client) sendMessage(ctx context.Context, req sendMessageRequest) error {
	_, err := c.call(ctx, "sendMessage", req)
	return err
}

// GetUpdates long-polls for updates past offset. Blocks up to timeout.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	result, err := c.call(ctx, "getUpdates", getUpdatesRequest{
		Offset:         offset,
		Timeout:        int(timeout.Seconds()),
		AllowedUpdates: []string{"message", "callback_query"},
	})
	if err != nil {
		return nil, err
	}
	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("telegram: decode updates: %w", err)
	}
	return updates, nil
}

// AnswerCallbackQuery acknowledges a button tap so the client stops showing
// its loading spinner.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackQueryID string) error {
	_, err := c.call(ctx, "answerCallbackQuery", answerCallbackRequest{CallbackQueryID: callbackQueryID})
	return err
}

// SetWebhook registers the webhook URL with an optional secret token that
// Telegram echoes back in X-Telegram-Bot-Api-Secret-Token.
func (c *Client) SetWebhook(ctx context.Context, url, secretToken string) error {
	_, err := c.call(ctx, "setWebhook", setWebhookRequest{URL: url, SecretToken: secretToken})
	return err
}

// DeleteWebhook removes the webhook so getUpdates works again.
func (c *Client) DeleteWebhook(ctx context.Context) error {
	_, err := c.call(ctx, "deleteWebhook", struct{}{})
	return err
}

func (c *Client) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("telegram: marshal %s: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("telegram: create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram: %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("telegram: read %s response: %w", method, err)
	}

	var api apiResponse
	if err := json.Unmarshal(respBody, &api); err != nil {
		return nil, fmt.Errorf("telegram: decode %s response: %w", method, err)
	}
	if !api.OK {
		return nil, fmt.Errorf("telegram: %s failed: %s (%d)", method, api.Description, api.ErrorCode)
	}
	return api.Result, nil
}
