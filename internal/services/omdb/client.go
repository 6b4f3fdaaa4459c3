package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amaumene/popcorn/internal/config"
	"github.com/amaumene/popcorn/internal/metrics"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/amaumene/popcorn/internal/services/omdb"
	maxResponseSize = 2 * 1024 * 1024
)

var (
	// ErrNotFound is returned when OMDb reports no match or a search has zero results
	ErrNotFound = errors.New("movie not found")
	// ErrMalformed is returned when the response body cannot be decoded
	ErrMalformed = errors.New("malformed OMDb response")
)

// APIError is a failure reported in the body of an OMDb response
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OMDb error: %s", e.Message)
}

// envelope holds the fields every OMDb response carries
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Client wraps direct OMDb API HTTP calls
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	tracer     trace.Tracer
	metrics    *metrics.Metrics
	logger     *logrus.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithTracerProvider traces requests with tp instead of the global provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// WithMetrics records request durations
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a new OMDb client
func NewClient(cfg *config.Config, logger *logrus.Logger, opts ...Option) (*Client, error) {
	if cfg.OMDbURL == "" {
		return nil, fmt.Errorf("OMDb URL is required")
	}
	if cfg.OMDbAPIKey == "" {
		return nil, fmt.Errorf("OMDb API key is required")
	}
	if _, err := url.Parse(cfg.OMDbURL); err != nil {
		return nil, fmt.Errorf("invalid OMDb URL: %w", err)
	}

	c := &Client{
		baseURL:    cfg.OMDbURL,
		apiKey:     cfg.OMDbAPIKey,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		tracer:     otel.Tracer(tracerName),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// doRequest performs a GET against the OMDb endpoint and decodes the body into result.
// kind labels the request in logs, traces and metrics.
func (c *Client) doRequest(ctx context.Context, kind string, params url.Values, result interface{}) error {
	ctx, span := c.tracer.Start(ctx, "omdb."+kind, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	apiURL, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid OMDb URL: %w", err)
	}

	query := apiURL.Query()
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	// Logged URL omits the key
	logged := apiURL.Scheme + "://" + apiURL.Host + apiURL.Path + "?" + query.Encode()
	query.Set("apikey", c.apiKey)
	apiURL.RawQuery = query.Encode()

	span.SetAttributes(attribute.String("omdb.kind", kind))
	c.logger.WithFields(logrus.Fields{
		"kind": kind,
		"url":  logged,
	}).Debug("Making OMDb request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "popcorn/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(kind, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		// Keep context errors matchable by callers
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("OMDb request aborted: %w", ctxErr)
		}
		return fmt.Errorf("OMDb request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.WithFields(logrus.Fields{
		"kind":        kind,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("OMDb request completed")

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		span.RecordError(err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("OMDb request aborted: %w", ctxErr)
		}
		return fmt.Errorf("failed to read OMDb response: %w", err)
	}

	// Failures are signaled in the body, sometimes with a non-200 status
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("OMDb API returned status %d", resp.StatusCode)
		}
		span.SetStatus(codes.Error, "malformed response")
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.EqualFold(env.Response, "False") {
		span.SetStatus(codes.Error, env.Error)
		if isNotFound(env.Error) {
			return fmt.Errorf("%w: %s", ErrNotFound, env.Error)
		}
		return &APIError{Message: env.Error}
	}
	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, resp.Status)
		return fmt.Errorf("OMDb API returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, result); err != nil {
		span.SetStatus(codes.Error, "malformed response")
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return nil
}

func isNotFound(message string) bool {
	return strings.Contains(strings.ToLower(message), "not found")
}
