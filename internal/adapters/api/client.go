package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"launchgate/internal/domain"
)

// TokenSource supplies the bearer credential for outbound calls. An empty
// credential means the call goes out unauthenticated.
type TokenSource interface {
	Token() domain.Credential
}

// Client is the HTTP implementation of domain.Gateway.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	logger  *slog.Logger

	// onAuthRejected runs before a 401 is returned to the caller, so the
	// session can be torn down as a side effect. Set after construction to
	// break the session<->gateway cycle.
	onAuthRejected func()
}

// NewClient returns a Gateway that calls the remote event-management API.
func NewClient(baseURL string, client *http.Client, tokens TokenSource, logger *slog.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
		logger:  logger,
	}
}

// SetTokenSource registers the credential supplier. Like the auth-rejected
// hook it is set after construction: the session store and the gateway
// reference each other.
func (c *Client) SetTokenSource(tokens TokenSource) { c.tokens = tokens }

// SetAuthRejectedHook registers the callback fired on any 401 response.
func (c *Client) SetAuthRejectedHook(fn func()) { c.onAuthRejected = fn }

var _ domain.Gateway = (*Client)(nil)

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out domain.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, email, password string, role domain.Role, name string) (*domain.AuthResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"role":     string(role),
		"name":     name,
	}
	var out domain.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	var out []*domain.Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListMyEvents(ctx context.Context) ([]*domain.Event, error) {
	var out []*domain.Event
	if err := c.do(ctx, http.MethodGet, "/events/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEvent(ctx context.Context, draft *domain.EventDraft) error {
	return c.do(ctx, http.MethodPost, "/events", draft, nil)
}

func (c *Client) UpdateEventStatus(ctx context.Context, eventName, status string) error {
	body := map[string]string{"event_name": eventName, "status": status}
	return c.do(ctx, http.MethodPost, "/events/update-status", body, nil)
}

func (c *Client) ListMyEnrollments(ctx context.Context) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	if err := c.do(ctx, http.MethodGet, "/enrollments/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEnrollment(ctx context.Context, draft *domain.EnrollmentDraft) error {
	return c.do(ctx, http.MethodPost, "/enrollments", draft, nil)
}

func (c *Client) ListEventEnrollments(ctx context.Context, eventName string) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	path := fmt.Sprintf("/events/%s/enrollments", url.PathEscape(eventName))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RequestAccess(ctx context.Context, eventName string) error {
	body := map[string]string{"event_name": eventName}
	return c.do(ctx, http.MethodPost, "/investors/request-access", body, nil)
}

func (c *Client) GatedRoster(ctx context.Context, eventName string) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	path := fmt.Sprintf("/investors/event/%s", url.PathEscape(eventName))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAccessRequests(ctx context.Context, eventName string) ([]*domain.AccessRequest, error) {
	var out []*domain.AccessRequest
	path := fmt.Sprintf("/investors/requests/%s", url.PathEscape(eventName))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveAccess(ctx context.Context, eventName, investorEmail string, approve bool) error {
	body := map[string]any{
		"event_name":     eventName,
		"investor_email": investorEmail,
		"approve":        approve,
	}
	return c.do(ctx, http.MethodPost, "/investors/approve", body, nil)
}

func (c *Client) Shortlist(ctx context.Context, eventName, startupEmail string) error {
	body := map[string]string{"event_name": eventName, "startup_email": startupEmail}
	return c.do(ctx, http.MethodPost, "/investors/shortlist", body, nil)
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+string(token))
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Detail = eb.Detail
		}
		if resp.StatusCode == http.StatusUnauthorized && c.onAuthRejected != nil {
			c.onAuthRejected()
		}
		if c.logger != nil {
			c.logger.DebugContext(ctx, "backend call failed",
				"method", method, "path", path, "status", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
