// Package mpesa is a client for Safaricom's Daraja API: OAuth token grants,
// Lipa Na M-Pesa Online (STK push) initiation and status queries, and the
// asynchronous callback payload types.
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/frankbeauty/salon-bot/internal/observability/metrics"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

var mpesaTracer = otel.Tracer("salonbot.internal.payments.mpesa")

const (
	sandboxBaseURL     = "https://sandbox.safaricom.co.ke"
	productionBaseURL  = "https://api.safaricom.co.ke"
	defaultHTTPTimeout = 10 * time.Second

	// Daraja grants last an hour; refresh early to avoid racing the expiry.
	tokenLifetime = 55 * time.Minute

	// Daraja rejects AccountReference values longer than this.
	maxAccountReference = 12
)

// Config carries the Daraja app credentials and paybill details.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	Shortcode      string
	Passkey        string
	CallbackURL    string
	Environment    string // "sandbox" or "production"
}

// Client talks to Daraja. It caches the OAuth token and is safe for
// concurrent use.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.PaymentMetrics
	clock      func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a Daraja client for the environment named in cfg.
func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	base := sandboxBaseURL
	if cfg.Environment == "production" {
		base = productionBaseURL
	}
	return &Client{
		cfg:        cfg,
		baseURL:    base,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     logger,
		clock:      time.Now,
	}
}

// SetBaseURL overrides the Daraja base URL (useful for testing).
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

func (c *Client) WithMetrics(m *metrics.PaymentMetrics) *Client {
	c.metrics = m
	return c
}

func (c *Client) WithClock(clock func() time.Time) *Client {
	if clock != nil {
		c.clock = clock
	}
	return c
}

// InitiateSTKPush fires a payment prompt at the customer's phone. The returned
// CheckoutRequestID correlates the eventual callback with this initiation.
// Phone must already be in 254XXXXXXXXX form.
func (c *Client) InitiateSTKPush(ctx context.Context, phone string, amountKES int, accountRef, description string) (*STKPushResponse, error) {
	ctx, span := mpesaTracer.Start(ctx, "mpesa.stk_push",
		trace.WithAttributes(attribute.Int("amount_kes", amountKES)))
	defer span.End()

	token, err := c.accessToken(ctx)
	if err != nil {
		c.metrics.ObserveSTKPush("auth_error")
		return nil, err
	}

	if len(accountRef) > maxAccountReference {
		accountRef = accountRef[:maxAccountReference]
	}
	ts := c.clock().Format("20060102150405")
	req := stkPushRequest{
		BusinessShortCode: c.cfg.Shortcode,
		Password:          c.password(ts),
		Timestamp:         ts,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amountKES,
		PartyA:            phone,
		PartyB:            c.cfg.Shortcode,
		PhoneNumber:       phone,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  accountRef,
		TransactionDesc:   description,
	}

	var resp STKPushResponse
	if err := c.post(ctx, "/mpesa/stkpush/v1/processrequest", token, req, &resp); err != nil {
		c.metrics.ObserveSTKPush("error")
		return nil, err
	}
	if resp.ResponseCode != "0" {
		c.metrics.ObserveSTKPush("rejected")
		return nil, fmt.Errorf("mpesa: stk push rejected: %s (%s)", resp.ResponseDescription, resp.ResponseCode)
	}
	c.metrics.ObserveSTKPush("success")
	c.logger.Info("stk push initiated", "checkout_request_id", resp.CheckoutRequestID, "amount_kes", amountKES)
	return &resp, nil
}

// QueryStatus asks Daraja for the settled state of an earlier STK push.
func (c *Client) QueryStatus(ctx context.Context, checkoutRequestID string) (*QueryResponse, error) {
	ctx, span := mpesaTracer.Start(ctx, "mpesa.stk_query")
	defer span.End()

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	ts := c.clock().Format("20060102150405")
	req := stkQueryRequest{
		BusinessShortCode: c.cfg.Shortcode,
		Password:          c.password(ts),
		Timestamp:         ts,
		CheckoutRequestID: checkoutRequestID,
	}
	var resp QueryResponse
	if err := c.post(ctx, "/mpesa/stkpushquery/v1/query", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// password derives the Lipa Na M-Pesa password for a request timestamp.
func (c *Client) password(timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(c.cfg.Shortcode + c.cfg.Passkey + timestamp))
}

// accessToken returns a cached OAuth token, fetching a fresh one when expired.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && c.clock().Before(c.tokenExpiry) {
		return c.token, nil
	}

	url := c.baseURL + "/oauth/v1/generate?grant_type=client_credentials"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("mpesa: create token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mpesa: fetch access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("mpesa: token request failed with status %d: %s", resp.StatusCode, body)
	}
	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("mpesa: decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("mpesa: token response missing access_token")
	}

	c.token = tr.AccessToken
	c.tokenExpiry = c.clock().Add(tokenLifetime)
	return c.token, nil
}

func (c *Client) post(ctx context.Context, path, token string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mpesa: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mpesa: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mpesa: %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("mpesa: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.ErrorMessage != "" {
			return fmt.Errorf("mpesa: %s failed: %s (%s)", path, apiErr.ErrorMessage, apiErr.ErrorCode)
		}
		return fmt.Errorf("mpesa: %s failed with status %d: %s", path, resp.StatusCode, respBody)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("mpesa: decode response: %w", err)
	}
	return nil
}

// trimFloat renders a numeric phone number without a trailing ".0" exponent.
func trimFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
