package dashboard

// EmptyStateMessage is shown when a query legitimately returns no days
const EmptyStateMessage = "No sales data for the selected filters."

// View is the dashboard state: the active filter, the loaded rows and an
// optional selected row. Changing the filter or the rows clears the selection.
type View struct {
	filter   Filter
	points   []DayPoint
	selected *DayPoint
}

// NewView creates a view for a filter with no data loaded yet
func NewView(filter Filter) View {
	return View{filter: filter}
}

// Filter returns the active filter
func (v View) Filter() Filter { return v.filter }

// Points returns the loaded day rows
func (v View) Points() []DayPoint { return v.points }

// Selected returns the selected row, if any
func (v View) Selected() (DayPoint, bool) {
	if v.selected == nil {
		return DayPoint{}, false
	}
	return *v.selected, true
}

// WithFilter switches the filter; loaded rows become stale and are dropped
func (v View) WithFilter(f Filter) View {
	return View{filter: f}
}

// WithPoints replaces the rows and clears the selection
func (v View) WithPoints(points []DayPoint) View {
	return View{filter: v.filter, points: points}
}

// Select marks the row for date as selected. Unknown dates leave the
// view unchanged and report false.
func (v View) Select(date string) (View, bool) {
	for i := range v.points {
		if v.points[i].Date == date {
			p := v.points[i]
			return View{filter: v.filter, points: v.points, selected: &p}, true
		}
	}
	return v, false
}

// ClearSelection drops the selected row
func (v View) ClearSelection() View {
	return View{filter: v.filter, points: v.points}
}

// IsEmpty reports whether the view has no rows to chart
func (v View) IsEmpty() bool {
	return len(v.points) == 0
}

// KPIs computes the KPIs of the loaded rows
func (v View) KPIs() (KPIs, bool) {
	return ComputeKPIs(v.points)
}

// TopByVolume ranks the loaded rows by volume
func (v View) TopByVolume(n int) []DayPoint {
	return TopByVolume(v.points, n)
}
