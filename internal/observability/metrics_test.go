package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	m.ObserveEncode(2, nil)
	m.ObserveEncode(2, nil)
	m.ObserveEncode(6, errors.New("bad level"))
	m.ObserveUpstream("catalog", 200, 150*time.Millisecond)
	m.ObserveDownload(1024, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.MeshEncodes.WithLabelValues("2", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MeshEncodes.WithLabelValues("6", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("catalog", "200")))
	assert.Equal(t, 1024.0, testutil.ToFloat64(m.DownloadedBytes))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ExtractedFiles))
}

func TestMetrics_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	m.ObserveEncode(3, nil)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `meshcode_encodes_total{level="3",result="ok"} 1`)
}

func TestMetrics_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)

	second.ObserveEncode(1, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.MeshEncodes.WithLabelValues("1", "ok")))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEncode(1, nil)
		m.ObserveUpstream("pack", 0, time.Second)
		m.ObserveDownload(1, 1)
	})
}
