package sales

import (
	"fmt"
	"time"

	"github.com/salesdash/backend/internal/domain/shared"
)

// DateLayout is the ISO calendar date layout used by the API
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date parameter is not an ISO calendar date
var ErrInvalidDate = shared.NewDomainError("INVALID_DATE", "date must use the YYYY-MM-DD format")

// DateRange is an inclusive range of UTC calendar days.
// End covers the whole day, so an order at 23:59 on End is included.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both bounds to UTC midnight
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: TruncateDay(start), End: TruncateDay(end)}
}

// ParseDateRange parses two YYYY-MM-DD strings into a DateRange
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("startDate %q: %w", start, ErrInvalidDate)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("endDate %q: %w", end, ErrInvalidDate)
	}
	return NewDateRange(s, e), nil
}

// IsEmpty reports whether the range is inverted and can match nothing
func (r DateRange) IsEmpty() bool {
	return r.Start.After(r.End)
}

// Contains reports whether t falls on a day inside the range
func (r DateRange) Contains(t time.Time) bool {
	if r.IsEmpty() {
		return false
	}
	t = t.UTC()
	return !t.Before(r.Start) && t.Before(r.End.AddDate(0, 0, 1))
}

// String renders the range as "start..end"
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

// TruncateDay returns UTC midnight of the day t falls on
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
