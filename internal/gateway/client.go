package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

type Option func(*Client)

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string { return c.endpoint }

// Submit posts text as the req form field and returns the body verbatim.
// Transport failures and non-2xx statuses are reported as *Error.
func (c *Client) Submit(ctx context.Context, text string) (string, error) {
	form := url.Values{}
	form.Set(FormField, text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &Error{Msg: "invalid request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	reqID := uuid.New().String()
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	c.logger.Debug("submitting request", "endpoint", c.endpoint, "request_id", reqID, "bytes", len(text))

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "request_id", reqID, "error", err)
		return "", &Error{Msg: friendlyError(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("reading response failed", "request_id", reqID, "error", err)
		return "", &Error{Status: resp.StatusCode, Msg: friendlyError(err), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("endpoint returned error status", "request_id", reqID, "status", resp.StatusCode)
		return "", &Error{Status: resp.StatusCode, Msg: describeStatus(resp.StatusCode, body)}
	}

	c.logger.Debug("response received", "request_id", reqID, "status", resp.StatusCode,
		"bytes", len(body), "latency", time.Since(start))
	return string(body), nil
}
