// Package fakestore is the HTTP client of the upstream product/cart API.
package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/infrastructure/telemetry"
)

// Client reads products and carts from the upstream API.
// Requests are never retried.
type Client struct {
	config     Config
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the configured API
func NewClient(config Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.MaxResponseBytes <= 0 {
		config.MaxResponseBytes = DefaultMaxResponseBytes
	}

	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetProducts fetches the full product catalog
func (c *Client) GetProducts(ctx context.Context) ([]sales.Product, error) {
	var products []sales.Product
	if err := c.getJSON(ctx, ResourceProducts, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetCarts fetches every cart
func (c *Client) GetCarts(ctx context.Context) ([]sales.Cart, error) {
	var carts []sales.Cart
	if err := c.getJSON(ctx, ResourceCarts, &carts); err != nil {
		return nil, err
	}
	return carts, nil
}

func (c *Client) getJSON(ctx context.Context, resource string, out any) (err error) {
	url := fmt.Sprintf("%s/%s", c.config.BaseURL, resource)

	ctx, span := telemetry.StartSpan(ctx, "fakestore.get_"+resource, trace.SpanKindClient,
		attribute.String("http.request.method", http.MethodGet),
		attribute.String("url.full", url),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &UpstreamFetchError{Resource: resource, Err: fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)}
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamFetchError{Resource: resource, Err: fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxResponseBytes))
	if err != nil {
		return &UpstreamFetchError{Resource: resource, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("%w: read body: %v", ErrUpstreamUnavailable, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamFetchError{Resource: resource, StatusCode: resp.StatusCode, Err: ErrUpstreamRequestFailed}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &UpstreamFetchError{Resource: resource, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("%w: %v", ErrUpstreamInvalidResponse, err)}
	}
	return nil
}
