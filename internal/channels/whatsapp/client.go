// Package whatsapp sends and receives messages via the WhatsApp Business
// Cloud API (Meta Graph API), including webhook payload types and signature
// verification.
package whatsapp

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
	defaultGraphAPIBase = "https://graph.facebook.com"
	defaultAPIVersion   = "v18.0"
	defaultHTTPTimeout  = 10 * time.Second
)

// Client sends messages through the Cloud API on behalf of one business number.
type Client struct {
	accessToken   string
	phoneNumberID string
	apiVersion    string
	graphAPIBase  string
	httpClient    *http.Client
}

// NewClient creates a Cloud API client for the given business phone number id.
func NewClient(accessToken, phoneNumberID string) *Client {
	return &Client{
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		apiVersion:    defaultAPIVersion,
		graphAPIBase:  defaultGraphAPIBase,
		httpClient:    &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// SetGraphAPIBase overrides the Graph API base URL (useful for testing).
func (c *Client) SetGraphAPIBase(base string) {
	c.graphAPIBase = base
}

// SetAPIVersion overrides the Graph API version segment.
func (c *Client) SetAPIVersion(v string) {
	if v != "" {
		c.apiVersion = v
	}
}

// SendText sends a plain text message to a phone number in 254XXXXXXXXX form.
func (c *Client) SendText(ctx context.Context, to, text string) (*SendResponse, error) {
	return c.send(ctx, sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             &Text{Body: text},
	})
}

// SendButtons sends text with up to three tappable reply buttons; the button
// id comes back in the webhook as the customer's reply.
func (c *Client) SendButtons(ctx context.Context, to, text string, buttons []ButtonReply) (*SendResponse, error) {
	req := sendRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "interactive",
		Interactive: &sendInteractive{
			Type: "button",
			Body: Text{Body: text},
		},
	}
	for _, b := range buttons {
		req.Interactive.Action.Buttons = append(req.Interactive.Action.Buttons, sendButton{Type: "reply", Reply: b})
	}
	return c.send(ctx, req)
}

func (c *Client) send(ctx context.Context, payload sendRequest) (*SendResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.graphAPIBase, c.apiVersion, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("whatsapp: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whatsapp: send failed with status %d: %s", resp.StatusCode, respBody)
	}

	var sendResp SendResponse
	if err := json.Unmarshal(respBody, &sendResp); err != nil {
		return nil, fmt.Errorf("whatsapp: decode response: %w", err)
	}
	return &sendResp, nil
}
