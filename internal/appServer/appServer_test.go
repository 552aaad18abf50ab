package appServer

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ds124wfegd/animegen/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(upstreamURL string) *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{URL: upstreamURL},
		Metrics:  config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func TestNewHandlerPreviewModeWithoutKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotKey string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Api-Key")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer upstream.Close()

	handler, err := NewHandler(testConfig(upstream.URL), upstream.Client(), prometheus.NewRegistry())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"image":"data:image/png;base64,iVBORw0KGgo="}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "preview mode")
	assert.Equal(t, config.PlaceholderAPIKey, gotKey)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `animegen_generate_requests_total{outcome="degraded"} 1`)
	assert.Contains(t, rec.Body.String(), "animegen_preview_mode 1")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Contains(t, rec.Body.String(), `"preview_mode":true`)
}

func TestNewHandlerUsesConfiguredKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Api-Key") != "real-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"output_url":"https://cdn/anime.png"}`))
	}))
	defer upstream.Close()

	cfg := testConfig(upstream.URL)
	cfg.Upstream.APIKey = "real-key"
	cfg.Metrics.Enabled = false

	handler, err := NewHandler(cfg, upstream.Client(), prometheus.NewRegistry())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"image":"data:image/png;base64,iVBORw0KGgo="}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.JSONEq(t, `{"output":"https://cdn/anime.png"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
