package report

import (
	"context"

	"github.com/salesdash/backend/internal/domain/dashboard"
	"github.com/salesdash/backend/internal/domain/sales"
)

// CategoryOption is one entry of the category selector
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterResponse echoes the applied filter
type FilterResponse struct {
	Category      string `json:"category"`
	CategoryLabel string `json:"category_label"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

// DashboardResponse is the view model of the dashboard
type DashboardResponse struct {
	Filter      FilterResponse       `json:"filter"`
	Categories  []CategoryOption     `json:"categories"`
	Points      []dashboard.DayPoint `json:"points"`
	KPIs        *dashboard.KPIs      `json:"kpis"`
	TopByVolume []dashboard.DayPoint `json:"top_by_volume"`
	Selected    *dashboard.DayPoint  `json:"selected"`
	Empty       bool                 `json:"empty"`
	Message     string               `json:"message,omitempty"`
}

// DashboardService builds the dashboard view on top of the sales-data use case
type DashboardService struct {
	salesData *SalesDataService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(salesData *SalesDataService) *DashboardService {
	return &DashboardService{salesData: salesData}
}

// GetDashboard aggregates the filter and derives KPIs, the top days by
// volume and the selected day. An unknown selected date is ignored.
func (s *DashboardService) GetDashboard(ctx context.Context, filter dashboard.Filter, selected string) (*DashboardResponse, error) {
	result, err := s.salesData.aggregate(ctx, SalesDataQuery{
		StartDate: filter.StartDate(),
		EndDate:   filter.EndDate(),
		Category:  filter.Category(),
	})
	if err != nil {
		return nil, err
	}

	points, err := dashboard.PointsFromSeries(result.Sales, result.Volume)
	if err != nil {
		return nil, err
	}

	view := dashboard.NewView(filter).WithPoints(points)
	if selected != "" {
		view, _ = view.Select(selected)
	}
	return buildDashboardResponse(view), nil
}

func buildDashboardResponse(view dashboard.View) *DashboardResponse {
	filter := view.Filter()
	resp := &DashboardResponse{
		Filter: FilterResponse{
			Category:      filter.Category().String(),
			CategoryLabel: filter.Category().Label(),
			StartDate:     filter.StartDate(),
			EndDate:       filter.EndDate(),
		},
		Categories:  categoryOptions(),
		Points:      view.Points(),
		TopByVolume: view.TopByVolume(dashboard.DefaultTopN),
		Empty:       view.IsEmpty(),
	}
	if resp.Points == nil {
		resp.Points = []dashboard.DayPoint{}
	}
	if kpis, ok := view.KPIs(); ok {
		resp.KPIs = &kpis
	}
	if sel, ok := view.Selected(); ok {
		resp.Selected = &sel
	}
	if resp.Empty {
		resp.Message = dashboard.EmptyStateMessage
	}
	return resp
}

func categoryOptions() []CategoryOption {
	known := sales.KnownCategories()
	opts := make([]CategoryOption, 0, len(known))
	for _, c := range known {
		opts = append(opts, CategoryOption{Value: c.String(), Label: c.Label()})
	}
	return opts
}
