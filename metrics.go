package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one process.
type Metrics struct {
	registry *prometheus.Registry

	entriesAppended *prometheus.CounterVec
	storeReads      *prometheus.CounterVec
	droppedRows     prometheus.Counter
	reportsSent     *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

func NewMetrics() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.entriesAppended = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodtick_entries_appended_total",
			Help: "Total number of mood entries appended to the store",
		},
		[]string{"backend"},
	)
	m.storeReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodtick_store_reads_total",
			Help: "Total number of store reads by result",
		},
		[]string{"result"}, // result: ok, error
	)
	m.droppedRows = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "moodtick_chart_dropped_rows_total",
			Help: "Rows skipped while preparing charts because of an unparseable date or mood",
		},
	)
	m.reportsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodtick_reports_sent_total",
			Help: "Total number of mailed reports by result",
		},
		[]string{"result"},
	)
	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodtick_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	for _, c := range []prometheus.Collector{m.entriesAppended, m.storeReads, m.droppedRows, m.reportsSent, m.httpRequests} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
