package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// Envelope is the wire shape every backend endpoint responds with.
type Envelope struct {
	Success           bool            `json:"success"`
	Data              json.RawMessage `json:"data,omitempty"`
	Message           string          `json:"message,omitempty"`
	Error             string          `json:"error,omitempty"`
	Detail            string          `json:"detail,omitempty"`
	Code              string          `json:"code,omitempty"`
	AttemptsRemaining *int            `json:"attempts_remaining,omitempty"`
}

// Client is the HTTP implementation of the Manager's transport contract.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	authToken  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithAuthToken registers a provider for the bearer token attached to every
// request. An empty return value sends no Authorization header.
func WithAuthToken(fn func() string) Option {
	return func(c *Client) {
		c.authToken = fn
	}
}

// NewClient returns a Client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post describes the post operation and its observable behavior.
//
// Post may return an error when input validation, dependency calls, or security checks fail.
// Post does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Post(ctx context.Context, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &TransportError{Op: "post", URL: c.baseURL + path, Err: err}
		}
		body = bytes.NewReader(data)
	}
	return c.roundTrip(ctx, http.MethodPost, path, body, out)
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.roundTrip(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, out any) error {
	op := strings.ToLower(method)
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &TransportError{Op: op, URL: url, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.authToken != nil {
		if token := c.authToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &TransportError{Op: op, URL: url, Err: err}
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &TransportError{Op: op, URL: url, Err: err}
	}

	if !env.Success && resp.StatusCode < 400 && env.Message == "" && env.Error == "" && env.Detail == "" && len(env.Data) > 0 {
		// Some endpoints omit the success flag on 2xx and return data only.
		env.Success = true
	}

	if !env.Success || resp.StatusCode >= 400 {
		return apiErrorFromEnvelope(env, resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &TransportError{Op: op, URL: url, Err: err}
		}
	}

	return nil
}

func apiErrorFromEnvelope(env Envelope, status int) *APIError {
	message := env.Message
	if message == "" {
		message = env.Error
	}
	if message == "" {
		message = env.Detail
	}

	attempts := -1
	if env.AttemptsRemaining != nil {
		attempts = *env.AttemptsRemaining
	}

	return &APIError{
		Code:              classify(env.Code, message),
		Message:           message,
		AttemptsRemaining: attempts,
		HTTPStatus:        status,
	}
}
