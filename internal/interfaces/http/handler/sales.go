package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/salesdash/backend/internal/application/report"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/interfaces/http/middleware"
)

// SalesDataProvider produces the daily sales series
type SalesDataProvider interface {
	GetSalesData(ctx context.Context, q report.SalesDataQuery) (*report.SalesDataResponse, error)
}

// SalesDataRequest holds the query parameters of GET /api/sales-data
type SalesDataRequest struct {
	StartDate string `form:"startDate" binding:"required,isodate"`
	EndDate   string `form:"endDate" binding:"required,isodate"`
	Category  string `form:"category" binding:"omitempty,salescategory"`
}

// Query converts the validated request into a use-case query
func (r SalesDataRequest) Query() (report.SalesDataQuery, error) {
	category, err := sales.ParseCategory(r.Category)
	if err != nil {
		return report.SalesDataQuery{}, err
	}
	return report.SalesDataQuery{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Category:  category,
	}, nil
}

// SalesHandler serves the aggregated sales series
type SalesHandler struct {
	BaseHandler
	service SalesDataProvider
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(service SalesDataProvider) *SalesHandler {
	return &SalesHandler{service: service}
}

// GetSalesData handles GET /api/sales-data.
// Responds with {prices, total_volumes}, 400 {error} when the date range
// is missing or malformed, and 500 {error, details} when the upstream
// store cannot be read.
func (h *SalesHandler) GetSalesData(c *gin.Context) {
	var req SalesDataRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	query, err := req.Query()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp, err := h.service.GetSalesData(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
