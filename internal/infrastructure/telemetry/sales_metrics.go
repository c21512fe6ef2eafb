package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Aggregation outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// SalesMetrics records the sales-data pipeline: aggregations served,
// upstream calls and webhook deliveries.
type SalesMetrics struct {
	aggregationsTotal *Counter
	upstreamFailures  *Counter
	webhookFailures   *Counter
	upstreamDuration  *Histogram
	seriesLength      *Histogram
}

// NewSalesMetrics creates the instruments on meter.
func NewSalesMetrics(meter metric.Meter) (*SalesMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		sm  SalesMetrics
		err error
	)
	if sm.aggregationsTotal, err = NewCounter(meter,
		"salesdash_aggregations_total", "Sales-data aggregations by category and outcome", "{aggregations}"); err != nil {
		return nil, err
	}
	if sm.upstreamFailures, err = NewCounter(meter,
		"salesdash_upstream_failures_total", "Failed upstream fetches by resource", "{failures}"); err != nil {
		return nil, err
	}
	if sm.webhookFailures, err = NewCounter(meter,
		"salesdash_webhook_failures_total", "Webhook notifications that could not be delivered", "{failures}"); err != nil {
		return nil, err
	}
	if sm.upstreamDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "salesdash_upstream_duration_seconds",
		Description: "Duration of upstream fetches",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if sm.seriesLength, err = NewHistogram(meter, HistogramOpts{
		Name:        "salesdash_series_length_days",
		Description: "Number of days in aggregated series",
		Unit:        "{days}",
		Boundaries:  SeriesLengthBuckets,
	}); err != nil {
		return nil, err
	}
	return &sm, nil
}

// RecordAggregation counts an aggregation; days is recorded only on success.
func (m *SalesMetrics) RecordAggregation(ctx context.Context, category string, days int, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.aggregationsTotal.Inc(ctx, AttrCategory.String(category), AttrOutcome.String(outcome))
	if err == nil {
		m.seriesLength.Record(ctx, float64(days), AttrCategory.String(category))
	}
}

// RecordUpstreamFetch records the duration of one upstream call and counts failures.
func (m *SalesMetrics) RecordUpstreamFetch(ctx context.Context, resource string, d time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
		m.upstreamFailures.Inc(ctx, AttrResource.String(resource))
	}
	m.upstreamDuration.RecordDuration(ctx, d, AttrResource.String(resource), AttrOutcome.String(outcome))
}

// RecordWebhookFailure counts an undelivered notification.
func (m *SalesMetrics) RecordWebhookFailure(ctx context.Context) {
	m.webhookFailures.Inc(ctx)
}
