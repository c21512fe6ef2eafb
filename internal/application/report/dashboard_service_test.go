package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdash/backend/internal/domain/dashboard"
	"github.com/salesdash/backend/internal/domain/sales"
)

func TestDashboardService_GetDashboard(t *testing.T) {
	upstream := sampleUpstream()
	svc := NewDashboardService(NewSalesDataService(&upstream))

	resp, err := svc.GetDashboard(context.Background(), dashboard.DefaultFilter(), "2020-03-02")
	require.NoError(t, err)

	assert.Equal(t, FilterResponse{
		Category:      "all",
		CategoryLabel: "All Categories",
		StartDate:     "2020-03-01",
		EndDate:       "2020-03-10",
	}, resp.Filter)
	assert.Len(t, resp.Categories, 5)
	assert.Equal(t, CategoryOption{Value: "men's clothing", Label: "Men's Clothing"}, resp.Categories[1])

	require.Len(t, resp.Points, 3)
	assert.Equal(t, "2020-03-01", resp.Points[0].Date)

	require.NotNil(t, resp.KPIs)
	assert.InDelta(t, (19.99-39.96)/39.96*100, resp.KPIs.SalesChangePercent, 1e-9)
	assert.Equal(t, 9.0, resp.KPIs.TotalItemsSold)

	dates := make([]string, len(resp.TopByVolume))
	for i, p := range resp.TopByVolume {
		dates[i] = p.Date
	}
	assert.Equal(t, []string{"2020-03-01", "2020-03-02", "2020-03-05"}, dates)

	require.NotNil(t, resp.Selected)
	assert.Equal(t, 25.0, resp.Selected.Sales)
	assert.False(t, resp.Empty)
	assert.Empty(t, resp.Message)
}

func TestDashboardService_SinglePointHidesKPIs(t *testing.T) {
	upstream := sampleUpstream()
	svc := NewDashboardService(NewSalesDataService(&upstream))

	filter := dashboard.DefaultFilter().WithStartDate("2020-03-05").WithEndDate("2020-03-05")
	resp, err := svc.GetDashboard(context.Background(), filter, "")
	require.NoError(t, err)
	assert.Len(t, resp.Points, 1)
	assert.Nil(t, resp.KPIs)
	assert.Nil(t, resp.Selected)
}

func TestDashboardService_EmptyState(t *testing.T) {
	upstream := sampleUpstream()
	svc := NewDashboardService(NewSalesDataService(&upstream))

	filter := dashboard.DefaultFilter().WithCategory(sales.CategoryWomensClothing)
	resp, err := svc.GetDashboard(context.Background(), filter, "2020-03-01")
	require.NoError(t, err)

	assert.True(t, resp.Empty)
	assert.Equal(t, dashboard.EmptyStateMessage, resp.Message)
	assert.Nil(t, resp.Selected)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{}, decoded["points"])
	assert.Equal(t, []any{}, decoded["top_by_volume"])
	assert.Nil(t, decoded["kpis"])
}

func TestDashboardService_UnknownSelectionIgnored(t *testing.T) {
	upstream := sampleUpstream()
	svc := NewDashboardService(NewSalesDataService(&upstream))

	resp, err := svc.GetDashboard(context.Background(), dashboard.DefaultFilter(), "2020-03-03")
	require.NoError(t, err)
	assert.Nil(t, resp.Selected)
}

func TestDashboardService_UpstreamFailure(t *testing.T) {
	upstream := sampleUpstream()
	upstream.cartsErr = errors.New("carts unavailable")
	svc := NewDashboardService(NewSalesDataService(&upstream))

	resp, err := svc.GetDashboard(context.Background(), dashboard.DefaultFilter(), "")
	assert.EqualError(t, err, "carts unavailable")
	assert.Nil(t, resp)
}
