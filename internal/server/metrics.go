package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Bitlatte/folio/internal/site"
)

type metrics struct {
	rebuilds *prometheus.CounterVec
	duration prometheus.Histogram
	pages    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_rebuilds_total",
			Help: "Site builds by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "folio_rebuild_duration_seconds",
			Help:    "Duration of site builds.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		pages: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "folio_pages",
			Help: "Pages written by the last successful build.",
		}),
	}
	reg.MustRegister(m.rebuilds, m.duration, m.pages)
	return m
}

func (m *metrics) observe(report site.Report, elapsed time.Duration, err error) {
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.rebuilds.WithLabelValues("error").Inc()
		return
	}
	m.rebuilds.WithLabelValues("success").Inc()
	m.pages.Set(float64(report.Pages))
}
