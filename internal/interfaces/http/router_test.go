package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NyayVandan/internal/interfaces/http/handlers"
	"github.com/turtacn/NyayVandan/internal/interfaces/http/middleware"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

type stubService struct {
	health caselawtypes.HealthResponse
}

func (s *stubService) Analyze(ctx context.Context, req caselawtypes.AnalyzeRequest) (*caselawtypes.AnalyzeResponse, error) {
	return &caselawtypes.AnalyzeResponse{Status: "success"}, nil
}

func (s *stubService) Stats(ctx context.Context) (*caselawtypes.StatsResponse, error) {
	return &caselawtypes.StatsResponse{TotalCases: 7}, nil
}

func (s *stubService) Health(ctx context.Context) caselawtypes.HealthResponse {
	return s.health
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := &stubService{health: caselawtypes.HealthResponse{Status: "healthy", DatasetLoaded: true, IndexReady: true}}
	return NewRouter(RouterConfig{
		AnalyzeHandler: handlers.NewAnalyzeHandler(svc, nil),
		HealthHandler:  handlers.NewHealthHandler(svc),
		CORS:           middleware.DefaultCORSConfig(),
		Logging:        middleware.DefaultLoggingConfig(),
		Metrics:        prometheus.NewMetrics(),
	})
}

func TestRouterServesProbes(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouterServesMetrics(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "nyayvandan_http_requests_total")
}

func TestRouterAnalyzeRoute(t *testing.T) {
	r := testRouter(t)

	body := strings.NewReader(`{"case_text":"The accused was charged under Section 302 IPC for murder.","top_k":3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
}

func TestRouterStatsRoute(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_cases":7`)
}

func TestRouterUnknownRoute(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/analyze", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterAppliesCORSHeaders(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://court.example.in")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "https://court.example.in", rec.Header().Get("Access-Control-Allow-Origin"))
}
