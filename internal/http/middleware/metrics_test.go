package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/yungbote/humanizer-backend/internal/observability"
)

func TestMetricsSkipsProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := observability.New(reg)

	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/plans", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, p := range []string{"/healthcheck", "/api/plans", "/api/plans"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	n, err := testutil.GatherAndCount(reg, "humanizer_api_requests_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}
