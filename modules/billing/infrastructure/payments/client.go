package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/plexdi/studio/pkg/configuration"
	"github.com/plexdi/studio/pkg/metrics"
)

// CheckoutParams keys a hosted checkout session to the commission it
// pays for. Amount is the quantity of the purchased item, not a price.
type CheckoutParams struct {
	Item         string `json:"item"`
	Tier         string `json:"tier"`
	Amount       int    `json:"amount"`
	CommissionID string `json:"CommissionID"`
}

// CheckoutError reports a failure from the payment backend, preferring
// its `message` field over a generic status line.
type CheckoutError struct {
	StatusCode int
	Message    string
}

func (e *CheckoutError) Error() string {
	return e.Message
}

// Client creates hosted checkout sessions with the payment provider's
// backend and returns the redirect URL for the browser.
type Client interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error)
}

func NewClient() Client {
	conf := configuration.Use()
	return &client{
		baseURL: conf.Payments.BaseURL,
		httpClient: &http.Client{
			Timeout: conf.Payments.RequestTimeout,
		},
	}
}

func NewClientWithBaseURL(baseURL string, timeout time.Duration) Client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

func (c *client) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error) {
	if params.Amount <= 0 {
		params.Amount = 1
	}
	b, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("json marshal checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments/createCheckoutSession", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("payments", "network_error").Inc()
		return "", fmt.Errorf("http do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("payments", "network_error").Inc()
		return "", fmt.Errorf("http read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequests.WithLabelValues("payments", "server_error").Inc()
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(respBody, &envelope); err == nil && strings.TrimSpace(envelope.Message) != "" {
			return "", &CheckoutError{StatusCode: resp.StatusCode, Message: envelope.Message}
		}
		return "", &CheckoutError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("Server error: %d", resp.StatusCode)}
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("json unmarshal checkout response: %w", err)
	}
	if out.URL == "" {
		metrics.UpstreamRequests.WithLabelValues("payments", "server_error").Inc()
		return "", &CheckoutError{StatusCode: resp.StatusCode, Message: "checkout session has no redirect url"}
	}
	metrics.UpstreamRequests.WithLabelValues("payments", "ok").Inc()
	metrics.CheckoutSessions.Inc()
	return out.URL, nil
}
