package bfhl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:4000"
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 10 << 20
)

// Client posts requests to the /bfhl endpoint of one server.
type Client struct {
	endpoint string
	client   *http.Client
	contract *Contract
	logger   *zap.Logger
	timeout  *time.Duration
}

type Option func(*Client)

// WithHTTPClient sets the *http.Client requests are sent with. The client is
// copied, so later options never modify the caller's value.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the request timeout regardless of option order. Zero
// disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for baseURL. An empty baseURL means
// DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	endpoint, err := EndpointURL(baseURL)
	if err != nil {
		return nil, err
	}
	contract, err := DefaultContract()
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
		contract: contract,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.client
	if c.timeout != nil {
		hc.Timeout = *c.timeout
	}
	c.client = &hc
	return c, nil
}

// EndpointURL joins baseURL and the /bfhl path.
func EndpointURL(baseURL string) (string, error) {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(base, "/") + endpointPath)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid base url %q: missing host", baseURL)
	}
	return u.String(), nil
}

// Endpoint is the full URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts req and decodes the reply. Errors wrap ErrNetwork or
// ErrResponseShape.
func (c *Client) Submit(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrShape)
	}

	id := uuid.NewString()
	logger := c.logger.With(zap.String("submission", id), zap.String("endpoint", c.endpoint))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(req.Body()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	logger.Debug("Submitting request", zap.Int("items", len(req.Data)))

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		logger.Warn("Request failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Warn("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("Server returned error status",
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", elapsed))
		return nil, fmt.Errorf("%w: server returned %s", ErrNetwork, resp.Status)
	}

	decoded, err := decodeResponse(c.contract, body)
	if err != nil {
		logger.Warn("Rejected response", zap.Error(err))
		return nil, err
	}

	logger.Info("Response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed),
		zap.Int("bytes", len(body)))

	return &Result{
		ID:         id,
		Response:   decoded,
		StatusCode: resp.StatusCode,
		Elapsed:    elapsed,
		ReceivedAt: time.Now(),
		Raw:        body,
	}, nil
}
