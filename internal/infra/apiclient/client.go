// Package apiclient wraps HTTP calls to the remote membership API, the
// single owner of all persistence and business rules. Every response uses
// the {success, data, message} envelope; success=false carries a
// human-readable message surfaced to the user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/membresiasgt/panel-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("apiclient")

// Client talks to the membership API. It implements every store port plus
// the health pinger.
type Client struct {
	httpClient *http.Client
	// healthClient has no client-level timeout; the monitor's context
	// carries the 60s cold-start deadline, which must outlive the
	// regular data-call timeout.
	healthClient *http.Client
	baseURL      string // e.g. https://host/api
	healthURL    string // host root, probed by the connectivity monitor
	cb           *gobreaker.CircuitBreaker
	bulkhead     *resilience.Bulkhead
	cfg          resilience.Config
	logger       *zap.Logger
}

// NewClient creates a membership API client.
func NewClient(httpClient *http.Client, baseURL, healthURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient:   httpClient,
		healthClient: &http.Client{},
		baseURL:      baseURL,
		healthURL:    healthURL,
		cb:           cb,
		bulkhead:     resilience.NewBulkhead(cfg.MaxConcurrency),
		cfg:          cfg,
		logger:       logger,
	}
}

// envelope is the upstream response wrapper. Detailed reports put their
// rows/summary beside data instead of inside it.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
	Summary json.RawMessage `json:"summary,omitempty"`
}

// doRequest executes one request against the API and decodes the envelope.
// The upstream reports business failures via success=false in the body, at
// times alongside a non-2xx status, so the body is decoded before the
// status is judged.
func (c *Client) doRequest(ctx context.Context, method, path string, payload any) (*envelope, error) {
	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer c.bulkhead.Release()

	url := c.baseURL + path

	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		c.logger.Error("api: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("api: failed to read response body",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}

	var env envelope
	if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			c.logger.Warn("api: non-2xx response",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("body", string(raw)),
			)
			return nil, fmt.Errorf("api returned status %d: %s", resp.StatusCode, string(raw))
		}
		return nil, fmt.Errorf("failed to decode api response: %w", jsonErr)
	}

	c.logger.Debug("api: request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Bool("success", env.Success),
	)

	return &env, nil
}

// get runs a read through the circuit breaker with retries.
func (c *Client) get(ctx context.Context, operation, path string) (*envelope, error) {
	var env *envelope
	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			var reqErr error
			env, reqErr = c.doRequest(ctx, http.MethodGet, path, nil)
			return reqErr
		})
	})
	if err != nil {
		return nil, c.wrapTransport(operation, err)
	}
	if !env.Success {
		return nil, &domain.ErrUpstream{Operation: operation, Message: env.Message}
	}
	return env, nil
}

// send runs a mutation through the circuit breaker. Mutations are never
// retried: a replayed POST would duplicate the record.
func (c *Client) send(ctx context.Context, operation, method, path string, payload any) error {
	var env *envelope
	_, err := c.cb.Execute(func() (any, error) {
		var reqErr error
		env, reqErr = c.doRequest(ctx, method, path, payload)
		return nil, reqErr
	})
	if err != nil {
		return c.wrapTransport(operation, err)
	}
	if !env.Success {
		return &domain.ErrUpstream{Operation: operation, Message: env.Message}
	}
	return nil
}

// wrapTransport maps low-level failures to typed domain errors.
func (c *Client) wrapTransport(operation string, err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &domain.ErrCircuitOpen{Service: "membership-api"}
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.ErrTimeout{Operation: operation}
	default:
		return &domain.ErrExternalService{Service: "membership-api/" + operation, Err: err}
	}
}

// Ping probes the host root. Any 2xx counts as alive. It bypasses the
// breaker and retry layer: the connectivity monitor owns its own deadline
// and its probes must not trip the breaker for data loads.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.healthClient.Do(req)
	if err != nil {
		// Unwrap url.Error so the monitor can tell a deadline from a refusal.
		if errors.Is(err, context.DeadlineExceeded) {
			return context.DeadlineExceeded
		}
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
