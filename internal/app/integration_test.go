package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"skywatch.app/internal/adapters/api"
	"skywatch.app/internal/config"
)

// PreviewTestSuite drives the preview HTTP surface of a fully wired application
// backed by a SQLite grid cache and a fake forecast service.
type PreviewTestSuite struct {
	suite.Suite
	nws         *fakeNWS
	application *Application
	router      *gin.Engine
	config      *config.Config
}

func (s *PreviewTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *PreviewTestSuite) SetupTest() {
	s.nws = newFakeNWS(s.T(), map[string]float64{
		"48.1,-122.1":  20,
		"47.5,-123.25": 80,
	})

	s.config = testConfig(s.T(), s.nws.server.URL)
	s.config.Cache = config.CacheConfig{
		Type:       config.CacheTypeSQLite,
		SQLitePath: filepath.Join(s.T().TempDir(), "grid_cache.db"),
	}

	s.application = newTestApplication(s.T(), s.config)
	s.router = s.application.GetRouter()
}

func (s *PreviewTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *PreviewTestSuite) TestListLocations() {
	w := s.get("/api/locations")
	s.Require().Equal(http.StatusOK, w.Code)

	var body []api.LocationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().Len(body, 2)
	s.Equal("Alpha", body[0].Name)
	s.Equal("07:00:00", body[0].Start)
	s.Equal("Beta", body[1].Name)
	s.Equal("skyCover", body[1].Conditions[0].Attribute)
}

func (s *PreviewTestSuite) TestEvaluations() {
	w := s.get("/api/evaluations")
	s.Require().Equal(http.StatusOK, w.Code)

	var body []api.EvaluationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().Len(body, 2)
	s.True(body[0].MeetsCriteria)
	s.Equal("Alpha will have skyCover of 20% tomorrow at 07:00", body[0].Text)
	s.False(body[1].MeetsCriteria)

	// The second evaluation resolves grids from the SQLite cache.
	w = s.get("/api/evaluations")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(2, s.nws.count("/points/"))
	s.Equal(4, s.nws.count("/gridpoints/"))
}

func (s *PreviewTestSuite) TestEvaluations_UnknownLocation() {
	w := s.get("/api/evaluations?location=Nowhere")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(0, s.nws.count("/"))
}

func (s *PreviewTestSuite) TestHealth() {
	w := s.get("/health")

	// SMTP points at a closed port, so the system reports degraded.
	s.Equal(http.StatusServiceUnavailable, w.Code)

	var body api.HealthResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("healthy", body.Components["cache"].Status)
	s.Equal("sqlite", body.Components["cache"].Details["backend"])
	s.Equal("unhealthy", body.Components["smtp"].Status)
}

func (s *PreviewTestSuite) TestMetrics() {
	s.Require().Equal(http.StatusOK, s.get("/api/evaluations").Code)

	w := s.get("/metrics")
	s.Require().Equal(http.StatusOK, w.Code)

	text := w.Body.String()
	s.True(strings.Contains(text, `skywatch_grid_cache_lookups_total{backend="sqlite",result="miss"} 2`), text)
	s.True(strings.Contains(text, `skywatch_location_evaluations_total{location="Alpha",meets_criteria="true"} 1`), text)
}

func TestPreviewTestSuite(t *testing.T) {
	suite.Run(t, new(PreviewTestSuite))
}
