package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics("/metrics"))
	r.GET("/surveys/:id", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.GET("/metrics", func(c *gin.Context) { c.String(http.StatusOK, "# scrape") })

	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/surveys/:id", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404"))
	baseScrape := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/metrics", "200"))

	for _, p := range []string{"/surveys/1", "/surveys/2", "/nope/123", "/metrics"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/surveys/:id", "200")) - baseOK; got != 2 {
		t.Fatalf("route counter delta=%v want 2", got)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404")) - base404; got != 1 {
		t.Fatalf("unmatched counter delta=%v want 1", got)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/metrics", "200")) - baseScrape; got != 0 {
		t.Fatalf("skipped path was counted: %v", got)
	}
	if got := testutil.ToFloat64(httpInflight); got != 0 {
		t.Fatalf("inflight gauge should settle at 0, got %v", got)
	}
	if n := testutil.CollectAndCount(httpLat); n == 0 {
		t.Fatal("latency histogram has no series")
	}
}
