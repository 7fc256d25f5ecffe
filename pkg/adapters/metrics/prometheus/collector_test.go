package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	c := NewCollector()

	c.ObserveRequest("/check", "GET", 200, time.Millisecond)
	c.ObserveRequest("/check", "GET", 200, time.Millisecond)
	c.ObserveRequest("", "GET", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("/check", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues(UnmatchedRoute, "GET", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.duration))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector()
	b := NewCollector()

	a.ObserveRequest("/info", "GET", 200, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.requests.WithLabelValues("/info", "GET", "200")))
	assert.Equal(t, 0, testutil.CollectAndCount(b.requests))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.SetBuildInfo("1.2.3", "api1")
	c.ObserveRequest("/check", "GET", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `infoapi_build_info{profile="api1",version="1.2.3"} 1`))
	assert.True(t, strings.Contains(text, `infoapi_http_requests_total{method="GET",route="/check",status="200"} 1`))
	assert.True(t, strings.Contains(text, "go_goroutines"))
}
