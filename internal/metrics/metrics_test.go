package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/professionals/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(Get().HTTPRequestsTotal.WithLabelValues("GET", "/professionals/:slug", "200"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/professionals/ink-house", nil))
	require.Equal(t, http.StatusOK, w.Code)

	after := testutil.ToFloat64(Get().HTTPRequestsTotal.WithLabelValues("GET", "/professionals/:slug", "200"))
	assert.Equal(t, before+1, after)
}

func TestGinHandler_ExposesBusinessCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RecordReportResolved("block")

	r := gin.New()
	r.GET("/metrics", GinHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `indievia_reports_resolved_total{action="block"}`))
}
