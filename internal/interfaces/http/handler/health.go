package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness of the process
type HealthHandler struct {
	name      string
	version   string
	startTime time.Time
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Time    string `json:"time"`
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(name, version string) *HealthHandler {
	return &HealthHandler{name: name, version: version, startTime: time.Now()}
}

// Health handles GET /health. The upstream store is not probed.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Name:    h.name,
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}
