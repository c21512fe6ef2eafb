// Package report orchestrates the sales-data and dashboard use cases.
package report

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/infrastructure/logger"
	"github.com/salesdash/backend/internal/infrastructure/telemetry"
)

// Upstream resource names used in metrics
const (
	resourceProducts = "products"
	resourceCarts    = "carts"
)

// SalesDataQuery is a validated request for daily sales series.
// Dates stay in their raw YYYY-MM-DD form for the notification payload.
type SalesDataQuery struct {
	StartDate string
	EndDate   string
	Category  sales.Category
}

// SalesDataResponse is the public shape of the sales-data endpoint
type SalesDataResponse struct {
	Prices       sales.Series `json:"prices"`
	TotalVolumes sales.Series `json:"total_volumes"`
}

// SalesDataService fetches upstream data, aggregates it, and records the outcome
type SalesDataService struct {
	upstream Upstream
	trace    TraceRecorder
	notifier CompletionNotifier
	metrics  MetricsRecorder
	now      func() time.Time
}

// SalesDataOption configures optional collaborators
type SalesDataOption func(*SalesDataService)

// WithTraceRecorder sets the trace log
func WithTraceRecorder(t TraceRecorder) SalesDataOption {
	return func(s *SalesDataService) { s.trace = t }
}

// WithNotifier sets the completion notifier
func WithNotifier(n CompletionNotifier) SalesDataOption {
	return func(s *SalesDataService) { s.notifier = n }
}

// WithMetrics sets the metrics recorder
func WithMetrics(m MetricsRecorder) SalesDataOption {
	return func(s *SalesDataService) { s.metrics = m }
}

// NewSalesDataService creates a new SalesDataService
func NewSalesDataService(upstream Upstream, opts ...SalesDataOption) *SalesDataService {
	s := &SalesDataService{
		upstream: upstream,
		trace:    nopTrace{},
		notifier: nopNotifier{},
		metrics:  nopMetrics{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSalesData returns the daily sales and volume series for the query.
// Products and carts are fetched concurrently; if either fetch fails the
// whole call fails and no partial series is returned.
func (s *SalesDataService) GetSalesData(ctx context.Context, q SalesDataQuery) (*SalesDataResponse, error) {
	result, err := s.aggregate(ctx, q)
	if err != nil {
		return nil, err
	}
	return &SalesDataResponse{Prices: result.Sales, TotalVolumes: result.Volume}, nil
}

func (s *SalesDataService) aggregate(ctx context.Context, q SalesDataQuery) (sales.Result, error) {
	category := q.Category
	if category == "" {
		category = sales.CategoryAll
	}

	ctx, span := telemetry.StartSpan(ctx, "sales_data.get", trace.SpanKindInternal,
		telemetry.AttrCategory.String(category.String()),
		attribute.String("sales.start_date", q.StartDate),
		attribute.String("sales.end_date", q.EndDate),
	)
	defer span.End()

	dateRange, err := sales.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		telemetry.RecordError(span, err)
		return sales.Result{}, err
	}

	log := logger.L(ctx)
	start := s.now()

	products, carts, err := s.fetch(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		s.trace.RecordFailure(err)
		s.metrics.RecordAggregation(ctx, category.String(), 0, err)
		log.Error("Failed to fetch upstream data", zap.Error(err))
		return sales.Result{}, err
	}

	buckets := sales.Buckets(products, carts, dateRange, category)
	result := sales.ResultFromBuckets(buckets)
	duration := s.now().Sub(start)
	total, items := sales.Totals(buckets)

	s.trace.RecordSuccess(http.MethodGet, http.StatusOK, duration)
	s.metrics.RecordAggregation(ctx, category.String(), result.Len(), nil)
	span.SetAttributes(attribute.Int("sales.days", result.Len()))
	log.Info("Sales data aggregated",
		zap.String("range", dateRange.String()),
		zap.String("category", category.String()),
		zap.Int("products", len(products)),
		zap.Int("carts", len(carts)),
		zap.Int("days", result.Len()),
		zap.String("sales_total", total.StringFixed(2)),
		zap.Int64("items_sold", items),
		zap.Duration("duration", duration),
	)

	if err := s.notifier.NotifySalesProcessed(ctx, q.StartDate, q.EndDate, category.String()); err != nil {
		s.metrics.RecordWebhookFailure(ctx)
		log.Warn("Failed to send webhook notification", zap.Error(err))
	}

	return result, nil
}

// fetch loads products and carts in parallel
func (s *SalesDataService) fetch(ctx context.Context) ([]sales.Product, []sales.Cart, error) {
	var (
		products []sales.Product
		carts    []sales.Cart
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		begin := s.now()
		var err error
		products, err = s.upstream.GetProducts(gctx)
		s.metrics.RecordUpstreamFetch(gctx, resourceProducts, s.now().Sub(begin), err)
		return err
	})
	g.Go(func() error {
		begin := s.now()
		var err error
		carts, err = s.upstream.GetCarts(gctx)
		s.metrics.RecordUpstreamFetch(gctx, resourceCarts, s.now().Sub(begin), err)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return products, carts, nil
}
