// Package handler contains the gin handlers of the sales dashboard API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salesdash/backend/internal/domain/shared"
	"github.com/salesdash/backend/internal/infrastructure/logger"
	"github.com/salesdash/backend/internal/interfaces/http/dto"
	"github.com/salesdash/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context or header
func getRequestID(c *gin.Context) string {
	if id := c.GetString(middleware.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a 200 response with data as the body
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, message, details string) {
	c.JSON(statusCode, dto.NewErrorResponseWithDetails(message, details))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}

// HandleError converts a use-case error into an HTTP response.
// Domain errors with a client code become 4xx responses, everything
// else is reported as a proxy failure with the cause in details.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if status := dto.GetHTTPStatus(domainErr.Code); status < http.StatusInternalServerError {
			h.Error(c, status, dto.MsgInvalidQuery, err.Error())
			return
		}
	}

	logger.GetGinLogger(c).Error("Request failed",
		zap.String("request_id", getRequestID(c)),
		zap.Error(err),
	)
	h.Error(c, http.StatusInternalServerError, dto.MsgProxyError, err.Error())
}
