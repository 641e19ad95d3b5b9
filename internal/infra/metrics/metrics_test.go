//go:build unit

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

func TestObserveCheckout(t *testing.T) {
	m := New()

	m.ObserveCheckout("persisted", 0.2)
	m.ObserveCheckout("persisted", 0.3)
	m.ObserveCheckout("stock_conflict", 0.1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.checkouts.WithLabelValues("persisted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.checkouts.WithLabelValues("stock_conflict")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.checkoutDuration))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/product/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/product/123", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `storefront_http_requests_total{method="GET",route="/product/:id",status="200"} 1`), body)
}
