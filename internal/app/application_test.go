package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skywatch.app/internal/config"
	"skywatch.app/pkg/errors"
)

const testLocations = `locations:
  - name: Alpha
    latitude: 48.1
    longitude: -122.1
    start: {hour: 7}
    conditions:
      - attribute: skyCover
        threshold: 50
  - name: Beta
    latitude: 47.5
    longitude: -123.25
    start: {hour: 10}
    conditions:
      - attribute: skyCover
        threshold: 50
`

// fakeNWS serves points and gridpoints documents. skyCover maps a points key to the
// value reported for every hour of 2024-06-02.
type fakeNWS struct {
	server   *httptest.Server
	skyCover map[string]float64

	mutex    sync.Mutex
	requests []string
}

func newFakeNWS(t *testing.T, skyCover map[string]float64) *fakeNWS {
	t.Helper()

	f := &fakeNWS{skyCover: skyCover}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeNWS) handle(w http.ResponseWriter, r *http.Request) {
	f.mutex.Lock()
	f.requests = append(f.requests, r.URL.Path)
	f.mutex.Unlock()

	w.Header().Set("Content-Type", "application/geo+json")
	switch {
	case strings.HasPrefix(r.URL.Path, "/points/"):
		key := strings.TrimPrefix(r.URL.Path, "/points/")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"properties": map[string]string{
				"forecastGridData": f.server.URL + "/gridpoints/SEW/" + key,
			},
		})
	case strings.HasPrefix(r.URL.Path, "/gridpoints/SEW/"):
		key := strings.TrimPrefix(r.URL.Path, "/gridpoints/SEW/")
		value, ok := f.skyCover[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprintf(w, `{"properties": {"skyCover": {"values": [
			{"validTime": "2024-06-02T00:00:00+00:00/PT24H", "value": %g}
		]}}}`, value)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeNWS) count(prefix string) int {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	n := 0
	for _, p := range f.requests {
		if strings.HasPrefix(p, prefix) {
			n++
		}
	}
	return n
}

func writeLocations(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "locations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testLocations), 0o644))
	return path
}

func closedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func testConfig(t *testing.T, nwsURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	return &config.Config{
		Server: config.ServerConfig{Port: 8080},
		NWS: config.NWSConfig{
			BaseURL:            nwsURL,
			UserAgent:          "(skywatch.app test, test@example.com)",
			TimeoutSeconds:     5,
			BreakerMaxFailures: 5,
		},
		Email: config.EmailConfig{
			SMTPHost:    "127.0.0.1",
			SMTPPort:    closedPort(t),
			FromName:    "Skywatch",
			FromAddress: "skywatch@example.com",
			To:          []string{"me@example.com"},
		},
		Cache: config.CacheConfig{
			Type:     config.CacheTypeFile,
			FilePath: filepath.Join(dir, "grid_cache.json"),
		},
		Notify: config.NotifyConfig{
			LocationsFile:   writeLocations(t, dir),
			DisplayTimeZone: "UTC",
			DryRun:          true,
		},
		Log:     config.LogConfig{Level: "info"},
		Metrics: config.MetricsConfig{JobName: "skywatch_notify"},
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()

	application, err := NewApplicationWithConfig(cfg, Options{
		Clock: clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })
	return application
}

func TestApplication_Run_DryRun(t *testing.T) {
	nws := newFakeNWS(t, map[string]float64{
		"48.1,-122.1":  20,
		"47.5,-123.25": 80,
	})
	cfg := testConfig(t, nws.server.URL)
	application := newTestApplication(t, cfg)

	result, err := application.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha"}, result.QualifyingNames())
	assert.False(t, result.Sent)
	require.NotNil(t, result.Digest)
	assert.Equal(t, "Weather notification: Alpha", result.Digest.Subject)
	assert.Equal(t, "Alpha will have skyCover of 20% tomorrow at 07:00", result.Digest.Body)

	require.Len(t, result.Messages, 2)
	assert.Equal(t, "Beta will have skyCover of 80% tomorrow at 10:00", result.Messages[1].Text)

	assert.Equal(t, 2, nws.count("/points/"))
	assert.Equal(t, 2, nws.count("/gridpoints/"))
}

func TestApplication_Run_ReusesGridCache(t *testing.T) {
	nws := newFakeNWS(t, map[string]float64{
		"48.1,-122.1":  20,
		"47.5,-123.25": 80,
	})
	cfg := testConfig(t, nws.server.URL)

	first := newTestApplication(t, cfg)
	_, err := first.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	data, err := os.ReadFile(cfg.Cache.FilePath)
	require.NoError(t, err)
	var entries map[string]string
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Equal(t, nws.server.URL+"/gridpoints/SEW/48.1,-122.1", entries["48.1,-122.1"])

	second := newTestApplication(t, cfg)
	_, err = second.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, nws.count("/points/"), "points are resolved once per location")
	assert.Equal(t, 4, nws.count("/gridpoints/"))
}

func TestApplication_Run_SendFailure(t *testing.T) {
	nws := newFakeNWS(t, map[string]float64{
		"48.1,-122.1":  20,
		"47.5,-123.25": 80,
	})
	cfg := testConfig(t, nws.server.URL)
	cfg.Notify.DryRun = false
	application := newTestApplication(t, cfg)

	result, err := application.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsEmailError(err))
}

func TestApplication_Run_GridFetchFailureAborts(t *testing.T) {
	nws := newFakeNWS(t, map[string]float64{
		"48.1,-122.1": 20,
	})
	cfg := testConfig(t, nws.server.URL)
	application := newTestApplication(t, cfg)

	_, err := application.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluate location Beta")
	assert.True(t, errors.IsFetchFailureError(err))
}

func TestApplication_Run_PushesMetrics(t *testing.T) {
	nws := newFakeNWS(t, map[string]float64{
		"48.1,-122.1":  20,
		"47.5,-123.25": 80,
	})

	var mutex sync.Mutex
	var pushed []string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mutex.Lock()
		pushed = append(pushed, r.URL.Path)
		mutex.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	cfg := testConfig(t, nws.server.URL)
	cfg.Metrics.PushgatewayURL = gateway.URL
	application := newTestApplication(t, cfg)

	_, err := application.Run(context.Background())
	require.NoError(t, err)

	mutex.Lock()
	defer mutex.Unlock()
	require.Len(t, pushed, 1)
	assert.True(t, strings.HasSuffix(pushed[0], "/job/skywatch_notify"), pushed[0])
}

func TestApplication_Run_PushFailureIsNotFatal(t *testing.T) {
	nws := newFakeNWS(t, map[string]float64{
		"48.1,-122.1":  20,
		"47.5,-123.25": 80,
	})
	cfg := testConfig(t, nws.server.URL)
	cfg.Metrics.PushgatewayURL = fmt.Sprintf("http://127.0.0.1:%d", closedPort(t))
	application := newTestApplication(t, cfg)

	result, err := application.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha"}, result.QualifyingNames())
}

func TestApplication_Serve(t *testing.T) {
	nws := newFakeNWS(t, map[string]float64{
		"48.1,-122.1":  20,
		"47.5,-123.25": 80,
	})
	cfg := testConfig(t, nws.server.URL)
	cfg.Server.Port = closedPort(t)
	application := newTestApplication(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Serve(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/evaluations?location=Alpha", cfg.Server.Port)
	var body []map[string]interface{}
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		return json.NewDecoder(resp.Body).Decode(&body) == nil
	}, 5*time.Second, 50*time.Millisecond)

	require.Len(t, body, 1)
	assert.Equal(t, "Alpha", body[0]["location"])
	assert.Equal(t, true, body[0]["meets_criteria"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewApplicationWithConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{
			name: "missing locations file",
			mutate: func(cfg *config.Config) {
				cfg.Notify.LocationsFile = filepath.Join(t.TempDir(), "absent.yaml")
			},
		},
		{
			name: "unknown display zone",
			mutate: func(cfg *config.Config) {
				cfg.Notify.DisplayTimeZone = "Mars/Olympus_Mons"
			},
		},
		{
			name: "real send without recipients",
			mutate: func(cfg *config.Config) {
				cfg.Notify.DryRun = false
				cfg.Email.To = nil
			},
		},
		{
			name: "unusable cache file",
			mutate: func(cfg *config.Config) {
				dir := t.TempDir()
				path := filepath.Join(dir, "grid_cache.json")
				require.NoError(t, os.WriteFile(path, []byte("[1, 2]"), 0o644))
				cfg.Cache.FilePath = path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, "http://127.0.0.1:1")
			tt.mutate(cfg)

			application, err := NewApplicationWithConfig(cfg, Options{})
			assert.Error(t, err)
			assert.Nil(t, application)
		})
	}
}
