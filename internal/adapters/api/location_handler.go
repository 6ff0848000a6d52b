package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"skywatch.app/internal/core/forecast"
)

// ConditionResponse is one threshold of a location
type ConditionResponse struct {
	Attribute string  `json:"attribute"`
	Threshold float64 `json:"threshold"`
	Unit      string  `json:"unit"`
}

// LocationResponse describes a configured location
type LocationResponse struct {
	Name        string              `json:"name"`
	Latitude    float64             `json:"latitude"`
	Longitude   float64             `json:"longitude"`
	Start       string              `json:"start"`
	WindowHours int                 `json:"window_hours,omitempty"`
	Conditions  []ConditionResponse `json:"conditions"`
}

func toLocationResponse(loc forecast.Location) LocationResponse {
	resp := LocationResponse{
		Name:       loc.Name,
		Latitude:   loc.Latitude,
		Longitude:  loc.Longitude,
		Start:      loc.Start.String(),
		Conditions: make([]ConditionResponse, 0, len(loc.Conditions)),
	}
	if loc.Window != nil {
		resp.WindowHours = loc.Window.HoursAfter
	}
	for _, c := range loc.Conditions {
		resp.Conditions = append(resp.Conditions, ConditionResponse{
			Attribute: c.Attribute,
			Threshold: c.Threshold,
			Unit:      forecast.UnitFor(c.Attribute),
		})
	}
	return resp
}

// listLocations handles GET /api/locations
func (s *HTTPServerAdapter) listLocations(c *gin.Context) {
	response := make([]LocationResponse, 0, len(s.locations))
	for _, loc := range s.locations {
		response = append(response, toLocationResponse(loc))
	}
	c.JSON(http.StatusOK, response)
}
