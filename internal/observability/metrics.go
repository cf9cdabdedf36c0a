// Package observability exposes the gateway's Prometheus metrics.
package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the gateway collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	MeshEncodes      *prometheus.CounterVec
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	DownloadedBytes  prometheus.Counter
	ExtractedFiles   prometheus.Counter
}

// NewMetrics registers the gateway collectors against reg, or the default
// registerer when reg is nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	var err error
	m := &Metrics{gatherer: gatherer}

	m.MeshEncodes, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "meshcode_encodes_total",
		Help: "Mesh code encodings by level and result.",
	}, []string{"level", "result"}))
	if err != nil {
		return nil, err
	}

	m.UpstreamRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plateau_upstream_requests_total",
		Help: "Requests sent to the PLATEAU API by endpoint and status code.",
	}, []string{"endpoint", "status"}))
	if err != nil {
		return nil, err
	}

	m.UpstreamDuration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "plateau_upstream_request_duration_seconds",
		Help:    "Latency of requests sent to the PLATEAU API.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"endpoint"}))
	if err != nil {
		return nil, err
	}

	m.DownloadedBytes, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plateau_downloaded_bytes_total",
		Help: "Bytes of packed CityGML archives written to disk.",
	}))
	if err != nil {
		return nil, err
	}

	m.ExtractedFiles, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plateau_extracted_gml_files_total",
		Help: "GML files extracted from downloaded archives.",
	}))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// register adds c to reg, reusing an identical collector registered earlier.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("observability: register collector: %w", err)
	}
	return c, nil
}

// Handler serves the registered metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveEncode counts one mesh code encoding.
func (m *Metrics) ObserveEncode(level int, err error) {
	if m == nil || m.MeshEncodes == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.MeshEncodes.WithLabelValues(strconv.Itoa(level), result).Inc()
}

// ObserveUpstream records one attempt against the PLATEAU API. Status 0
// means the request never got a response.
func (m *Metrics) ObserveUpstream(endpoint string, status int, d time.Duration) {
	if m == nil || m.UpstreamRequests == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.UpstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObserveDownload records a finished archive download.
func (m *Metrics) ObserveDownload(bytes int64, extracted int) {
	if m == nil || m.DownloadedBytes == nil {
		return
	}
	m.DownloadedBytes.Add(float64(bytes))
	m.ExtractedFiles.Add(float64(extracted))
}
