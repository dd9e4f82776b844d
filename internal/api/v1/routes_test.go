package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"finstim/internal/metrics"
)

func TestMetricsEndpointAndMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	r := gin.New()
	SetupRoutes(r, &stubController{}, nil, nil, m, registry)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", BasePath+"/status", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", BasePath+"/status", "200"))
	assert.Equal(t, 1.0, count)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/metrics", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "finstim_http_requests_total")
}
