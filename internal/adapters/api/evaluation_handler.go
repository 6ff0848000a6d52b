package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"skywatch.app/internal/core/forecast"
	"skywatch.app/pkg/errors"
)

// ReadingResponse is the extracted value of one condition
type ReadingResponse struct {
	Attribute string  `json:"attribute"`
	Threshold float64 `json:"threshold"`
	Unit      string  `json:"unit"`
	Value     float64 `json:"value"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
}

// EvaluationResponse is the dry-run result for one location
type EvaluationResponse struct {
	Location      string            `json:"location"`
	MeetsCriteria bool              `json:"meets_criteria"`
	Text          string            `json:"text"`
	Start         time.Time         `json:"start"`
	End           time.Time         `json:"end"`
	Readings      []ReadingResponse `json:"readings"`
}

func (s *HTTPServerAdapter) toEvaluationResponse(msg *forecast.Message) EvaluationResponse {
	resp := EvaluationResponse{
		Location:      msg.Location.Name,
		MeetsCriteria: msg.MeetsCriteria,
		Text:          msg.Text,
		Start:         msg.Span.Start.In(s.displayZone),
		End:           msg.Span.End.In(s.displayZone),
		Readings:      make([]ReadingResponse, 0, len(msg.Readings)),
	}
	for _, r := range msg.Readings {
		resp.Readings = append(resp.Readings, ReadingResponse{
			Attribute: r.Condition.Attribute,
			Threshold: r.Condition.Threshold,
			Unit:      forecast.UnitFor(r.Condition.Attribute),
			Value:     r.Value,
			Min:       r.Min,
			Max:       r.Max,
		})
	}
	return resp
}

// evaluate handles GET /api/evaluations. An optional location query parameter
// restricts the run to one configured location.
func (s *HTTPServerAdapter) evaluate(c *gin.Context) {
	locations := s.locations
	if name := c.Query("location"); name != "" {
		locations = nil
		for _, loc := range s.locations {
			if loc.Name == name {
				locations = []forecast.Location{loc}
				break
			}
		}
		if locations == nil {
			s.handleError(c, errors.NewNotFoundError(fmt.Sprintf("location %q is not configured", name)))
			return
		}
	}

	slog.Debug("Evaluating locations", "count", len(locations))

	messages, err := s.evaluations.Evaluate(c.Request.Context(), locations)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response := make([]EvaluationResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, s.toEvaluationResponse(msg))
	}
	c.JSON(http.StatusOK, response)
}
