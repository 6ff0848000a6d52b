package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skywatch.app/pkg/errors"
)

func TestHTTPServerAdapter_HandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := &HTTPServerAdapter{}

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{"Validation", errors.NewValidationError("validation failed"), http.StatusBadRequest, "validation failed"},
		{"NotFound", errors.NewNotFoundError("location \"X\" is not configured"), http.StatusNotFound, "location \"X\" is not configured"},
		{"UnsupportedTimeSpec", errors.NewUnsupportedTimeSpecError("start is not set"), http.StatusBadRequest, "start is not set"},
		{"NoMatchingForecast", errors.NewNoMatchingForecastError("no skyCover value"), http.StatusUnprocessableEntity, "no skyCover value"},
		{"EmptyWindow", errors.NewEmptyWindowError("no samples"), http.StatusUnprocessableEntity, "no samples"},
		{"MalformedResponse", errors.NewMalformedResponseError("no properties", nil), http.StatusBadGateway, "Forecast provider returned an unexpected response"},
		{"MalformedInterval", errors.NewMalformedIntervalError("bad interval", nil), http.StatusBadGateway, "Forecast provider returned an unexpected response"},
		{"FetchFailure", errors.NewFetchFailureError("GET failed", nil), http.StatusServiceUnavailable, "Forecast provider unavailable"},
		{"Email", errors.NewEmailError("smtp down", nil), http.StatusServiceUnavailable, "Unable to send email"},
		{"Cache", errors.NewCacheError("disk full", nil), http.StatusInternalServerError, "Internal server error"},
		{"Database", errors.NewDatabaseError("database connection failed", nil), http.StatusInternalServerError, "Internal server error"},
		{"Configuration", errors.NewConfigurationError("configuration error", nil), http.StatusInternalServerError, "Internal server error"},
		{"Generic", errors.New(errors.ErrorTypeUnknown, "generic error"), http.StatusInternalServerError, "Internal server error"},
		{"PlainError", stderrors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", func(c *gin.Context) { server.handleError(c, tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedMessage, response.Error)
		})
	}
}

func TestHTTPServerAdapter_HandleError_WrappedKeepsType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := &HTTPServerAdapter{}

	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		server.handleError(c, wrapf("evaluate location Keystone", errors.NewFetchFailureError("GET failed", nil)))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "FETCH_FAILURE", response.Type)
}
