package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	require.NotNil(t, m)

	m.Observe("GET", "/api/v1/cart", "200", 25*time.Millisecond)
	m.Observe("GET", "/api/v1/cart", "200", 30*time.Millisecond)
	m.Observe("POST", "", "500", 10*time.Millisecond)

	expected := `
# HELP http_requests_total HTTP requests processed, labeled by status class.
# TYPE http_requests_total counter
http_requests_total{method="GET",route="/api/v1/cart",status="200"} 2
http_requests_total{method="POST",route="unknown",status="500"} 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total")
	require.NoError(t, err)

	count := testutil.CollectAndCount(m.duration, "http_request_duration_seconds")
	assert.Equal(t, 2, count)
}

func TestHTTPMetricsNilSafe(t *testing.T) {
	var m *HTTPMetrics
	assert.NotPanics(t, func() {
		m.Observe("GET", "/", "200", time.Millisecond)
	})

	empty := NewHTTPMetrics(nil)
	assert.NotPanics(t, func() {
		empty.Observe("GET", "/", "200", time.Millisecond)
	})
}
