package studioapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/plexdi/studio/modules/commissions/domain/aggregates/commission"
	"github.com/plexdi/studio/pkg/configuration"
	"github.com/plexdi/studio/pkg/metrics"
)

// RemoteError carries a failure reported by the commissions backend.
// Message prefers the server-provided `message` field; when the body has
// none, it falls back to "Server error: <status>".
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

func newRemoteError(statusCode int, body []byte) *RemoteError {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && strings.TrimSpace(envelope.Message) != "" {
		return &RemoteError{StatusCode: statusCode, Message: envelope.Message}
	}
	return &RemoteError{StatusCode: statusCode, Message: fmt.Sprintf("Server error: %d", statusCode)}
}

// record mirrors the backend's commission wire shape.
type record struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Discord   string   `json:"discord"`
	Details   string   `json:"details"`
	Type      string   `json:"type"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at"`
	Designers []string `json:"designers"`
}

func (r record) toDomain() commission.Commission {
	status, err := commission.ParseStatus(r.Status)
	if err != nil {
		status = commission.StatusQueued
	}
	createdAt, _ := time.Parse(time.RFC3339, r.CreatedAt)
	return commission.New(
		r.Name,
		r.Email,
		commission.Kind(r.Type),
		commission.WithID(r.ID),
		commission.WithDiscord(r.Discord),
		commission.WithDetails(r.Details),
		commission.WithStatus(status),
		commission.WithCreatedAt(createdAt),
		commission.WithDesigners(r.Designers),
	)
}

type CreateParams struct {
	Name    string
	Email   string
	Discord string
	Details string
	Kind    commission.Kind
}

// Client talks to the remote commissions backend. It is the only way
// server state is read or mutated; the admin cache is rebuilt from its
// responses.
type Client interface {
	List(ctx context.Context) ([]commission.Commission, error)
	Create(ctx context.Context, params CreateParams) (commission.Commission, error)
	UpdateStatus(ctx context.Context, id string, status commission.Status) error
	Delete(ctx context.Context, id string) error
}

func NewClient() Client {
	conf := configuration.Use()
	return &client{
		baseURL: conf.StudioAPI.BaseURL,
		httpClient: &http.Client{
			Timeout: conf.StudioAPI.RequestTimeout,
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

func (c *client) doJSON(ctx context.Context, method, path string, reqBody any, out any) error {
	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("json marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("studioapi", "network_error").Inc()
		return fmt.Errorf("http do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("studioapi", "network_error").Inc()
		return fmt.Errorf("http read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequests.WithLabelValues("studioapi", "server_error").Inc()
		return newRemoteError(resp.StatusCode, respBody)
	}
	metrics.UpstreamRequests.WithLabelValues("studioapi", "ok").Inc()

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("json unmarshal response: %w", err)
	}
	return nil
}

func (c *client) List(ctx context.Context) ([]commission.Commission, error) {
	var records []record
	if err := c.doJSON(ctx, http.MethodGet, "/commissions", nil, &records); err != nil {
		return nil, err
	}
	commissions := make([]commission.Commission, 0, len(records))
	for _, r := range records {
		commissions = append(commissions, r.toDomain())
	}
	return commissions, nil
}

func (c *client) Create(ctx context.Context, params CreateParams) (commission.Commission, error) {
	reqBody := struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Discord string `json:"discord"`
		Details string `json:"details"`
		Type    string `json:"type"`
		Status  string `json:"status"`
	}{
		Name:    params.Name,
		Email:   params.Email,
		Discord: params.Discord,
		Details: params.Details,
		Type:    string(params.Kind),
		Status:  string(commission.StatusQueued),
	}

	var created record
	if err := c.doJSON(ctx, http.MethodPost, "/commissions", reqBody, &created); err != nil {
		return nil, err
	}
	return created.toDomain(), nil
}

func (c *client) UpdateStatus(ctx context.Context, id string, status commission.Status) error {
	reqBody := struct {
		Status string `json:"status"`
	}{Status: string(status)}
	return c.doJSON(ctx, http.MethodPatch, "/commissions/"+url.PathEscape(id), reqBody, nil)
}

func (c *client) Delete(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/commissions/"+url.PathEscape(id), nil, nil)
}
