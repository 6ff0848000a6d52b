package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"skywatch.app/internal/ports"
)

// HealthResponse aggregates component health
type HealthResponse struct {
	Status     string                       `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// health handles GET /health; any unhealthy component turns the response into a 503.
func (s *HTTPServerAdapter) health(c *gin.Context) {
	components := s.healthChecker.CheckAll(c.Request.Context())

	status := "healthy"
	code := http.StatusOK
	for _, component := range components {
		if component.Status != "healthy" {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(code, HealthResponse{Status: status, Components: components})
}
