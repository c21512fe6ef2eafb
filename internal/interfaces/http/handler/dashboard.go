package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/salesdash/backend/internal/application/report"
	"github.com/salesdash/backend/internal/domain/dashboard"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/interfaces/http/middleware"
)

// DashboardProvider builds the dashboard view model
type DashboardProvider interface {
	GetDashboard(ctx context.Context, filter dashboard.Filter, selected string) (*report.DashboardResponse, error)
}

// DashboardRequest holds the query parameters of GET /api/sales-dashboard.
// Every parameter is optional and falls back to the default filter.
type DashboardRequest struct {
	StartDate string `form:"startDate" binding:"omitempty,isodate"`
	EndDate   string `form:"endDate" binding:"omitempty,isodate"`
	Category  string `form:"category" binding:"omitempty,salescategory"`
	Selected  string `form:"selected" binding:"omitempty,isodate"`
}

// Filter applies the request on top of the default filter
func (r DashboardRequest) Filter() (dashboard.Filter, error) {
	filter := dashboard.DefaultFilter()
	if r.Category != "" {
		category, err := sales.ParseCategory(r.Category)
		if err != nil {
			return dashboard.Filter{}, err
		}
		filter = filter.WithCategory(category)
	}
	if r.StartDate != "" {
		filter = filter.WithStartDate(r.StartDate)
	}
	if r.EndDate != "" {
		filter = filter.WithEndDate(r.EndDate)
	}
	return filter, nil
}

// DashboardHandler serves the dashboard view model
type DashboardHandler struct {
	BaseHandler
	service DashboardProvider
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service DashboardProvider) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard handles GET /api/sales-dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var req DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	filter, err := req.Filter()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.service.GetDashboard(c.Request.Context(), filter, req.Selected)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
