package dashboard

import (
	"cmp"
	"slices"

	"github.com/salesdash/backend/internal/domain/shared"
)

// DefaultTopN is the size of the top-days-by-volume ranking
const DefaultTopN = 5

// ErrMisalignedSeries is returned when sales and volume series do not line up
var ErrMisalignedSeries = shared.NewDomainError("MISALIGNED_SERIES", "sales and volume series are not aligned")

// KPIs are the summary statistics shown above the charts
type KPIs struct {
	SalesChangePercent float64 `json:"sales_change_percent"`
	TotalItemsSold     float64 `json:"total_items_sold"`
}

// ComputeKPIs derives the KPIs from the day rows.
// KPIs need at least two points; the second return value is false otherwise.
func ComputeKPIs(points []DayPoint) (KPIs, bool) {
	if len(points) < 2 {
		return KPIs{}, false
	}
	return KPIs{
		SalesChangePercent: PercentChange(points[0].Sales, points[len(points)-1].Sales),
		TotalItemsSold:     TotalVolume(points),
	}, true
}

// PercentChange returns the change from first to last in percent.
// A non-positive first value yields 0.
func PercentChange(first, last float64) float64 {
	if first <= 0 {
		return 0
	}
	return (last - first) / first * 100
}

// TotalVolume sums the volume of all points
func TotalVolume(points []DayPoint) float64 {
	var total float64
	for _, p := range points {
		total += p.Volume
	}
	return total
}

// TopByVolume returns the n days with the highest volume, highest first.
// Ties keep their original order.
func TopByVolume(points []DayPoint, n int) []DayPoint {
	if n <= 0 || len(points) == 0 {
		return []DayPoint{}
	}
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b DayPoint) int {
		return cmp.Compare(b.Volume, a.Volume)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
