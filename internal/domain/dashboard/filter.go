// Package dashboard models the sales dashboard view: filter state, derived
// KPIs, rankings and point selection over aggregated daily series.
package dashboard

import (
	"net/url"
	"time"

	"github.com/salesdash/backend/internal/domain/sales"
)

// Default filter window shown when the dashboard first loads
const (
	DefaultStartDate = "2020-03-01"
	DefaultEndDate   = "2020-03-10"
)

// Filter is the immutable filter state of the dashboard.
// Transitions return a new Filter and never modify the receiver.
type Filter struct {
	category  sales.Category
	startDate string
	endDate   string
}

// NewFilter creates a filter from raw values
func NewFilter(category sales.Category, startDate, endDate string) Filter {
	if category == "" {
		category = sales.CategoryAll
	}
	return Filter{category: category, startDate: startDate, endDate: endDate}
}

// DefaultFilter returns the initial dashboard filter
func DefaultFilter() Filter {
	return NewFilter(sales.CategoryAll, DefaultStartDate, DefaultEndDate)
}

// Category returns the category filter
func (f Filter) Category() sales.Category { return f.category }

// StartDate returns the start date as YYYY-MM-DD
func (f Filter) StartDate() string { return f.startDate }

// EndDate returns the end date as YYYY-MM-DD
func (f Filter) EndDate() string { return f.endDate }

// WithCategory returns a copy with the category replaced
func (f Filter) WithCategory(c sales.Category) Filter {
	return NewFilter(c, f.startDate, f.endDate)
}

// WithStartDate returns a copy with the start date replaced
func (f Filter) WithStartDate(d string) Filter {
	return NewFilter(f.category, d, f.endDate)
}

// WithEndDate returns a copy with the end date replaced
func (f Filter) WithEndDate(d string) Filter {
	return NewFilter(f.category, f.startDate, d)
}

// DateRange parses the filter dates
func (f Filter) DateRange() (sales.DateRange, error) {
	return sales.ParseDateRange(f.startDate, f.endDate)
}

// Query renders the query string of a sales-data request for this filter
func (f Filter) Query() url.Values {
	q := url.Values{}
	q.Set("startDate", f.startDate)
	q.Set("endDate", f.endDate)
	q.Set("category", f.category.String())
	return q
}

// DayPoint is one row of the dashboard: a day with its sales and items sold
type DayPoint struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Volume float64 `json:"volume"`
}

// PointsFromSeries zips the two aligned series into day rows
func PointsFromSeries(salesSeries, volumeSeries sales.Series) ([]DayPoint, error) {
	if len(salesSeries) != len(volumeSeries) {
		return nil, ErrMisalignedSeries
	}
	points := make([]DayPoint, len(salesSeries))
	for i, p := range salesSeries {
		if p.Timestamp != volumeSeries[i].Timestamp {
			return nil, ErrMisalignedSeries
		}
		points[i] = DayPoint{
			Date:   p.Time().Format(sales.DateLayout),
			Sales:  p.Value,
			Volume: volumeSeries[i].Value,
		}
	}
	return points, nil
}

// FormatTick formats an axis tick. ISO date strings render as "Jan 02";
// any other value is returned unchanged.
func FormatTick(tick any) any {
	s, ok := tick.(string)
	if !ok {
		return tick
	}
	for _, layout := range []string{sales.DateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 02")
		}
	}
	return tick
}
