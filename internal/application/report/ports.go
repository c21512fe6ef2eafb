package report

import (
	"context"
	"time"

	"github.com/salesdash/backend/internal/domain/sales"
)

// Upstream is the read-only source of products and carts
type Upstream interface {
	GetProducts(ctx context.Context) ([]sales.Product, error)
	GetCarts(ctx context.Context) ([]sales.Cart, error)
}

// TraceRecorder appends one line per served aggregation
type TraceRecorder interface {
	RecordSuccess(method string, status int, duration time.Duration)
	RecordFailure(err error)
}

// CompletionNotifier announces a successful aggregation
type CompletionNotifier interface {
	NotifySalesProcessed(ctx context.Context, from, to, category string) error
}

// MetricsRecorder observes the sales-data pipeline
type MetricsRecorder interface {
	RecordAggregation(ctx context.Context, category string, days int, err error)
	RecordUpstreamFetch(ctx context.Context, resource string, d time.Duration, err error)
	RecordWebhookFailure(ctx context.Context)
}

type nopTrace struct{}

func (nopTrace) RecordSuccess(string, int, time.Duration) {}
func (nopTrace) RecordFailure(error)                      {}

type nopNotifier struct{}

func (nopNotifier) NotifySalesProcessed(context.Context, string, string, string) error { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordAggregation(context.Context, string, int, error)                {}
func (nopMetrics) RecordUpstreamFetch(context.Context, string, time.Duration, error) {}
func (nopMetrics) RecordWebhookFailure(context.Context)                               {}
