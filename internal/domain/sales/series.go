package sales

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DailyBucket accumulates the totals of one calendar day
type DailyBucket struct {
	Date  time.Time
	Sales decimal.Decimal
	Items int64
}

// Point is a single (timestamp, value) sample of a series.
// It marshals to the JSON pair [timestampMs, value].
type Point struct {
	Timestamp int64
	Value     float64
}

// MarshalJSON encodes the point as a two element array
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Timestamp, p.Value})
}

// UnmarshalJSON decodes a two element array
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("point: expected 2 elements, got %d", len(raw))
	}
	p.Timestamp = int64(raw[0])
	p.Value = raw[1]
	return nil
}

// Time returns the UTC time of the point
func (p Point) Time() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

// Series is an ordered list of points
type Series []Point

// Result holds the two index-aligned series produced by an aggregation
type Result struct {
	Sales  Series
	Volume Series
}

// Aligned reports whether both series have the same length and timestamps
func (r Result) Aligned() bool {
	if len(r.Sales) != len(r.Volume) {
		return false
	}
	for i := range r.Sales {
		if r.Sales[i].Timestamp != r.Volume[i].Timestamp {
			return false
		}
	}
	return true
}

// Len returns the number of days in the result
func (r Result) Len() int {
	return len(r.Sales)
}

// ResultFromBuckets converts ordered buckets into aligned series
func ResultFromBuckets(buckets []DailyBucket) Result {
	result := Result{
		Sales:  make(Series, 0, len(buckets)),
		Volume: make(Series, 0, len(buckets)),
	}
	for _, b := range buckets {
		ts := b.Date.UnixMilli()
		result.Sales = append(result.Sales, Point{Timestamp: ts, Value: b.Sales.InexactFloat64()})
		result.Volume = append(result.Volume, Point{Timestamp: ts, Value: float64(b.Items)})
	}
	return result
}
