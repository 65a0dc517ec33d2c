package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics owns the server's prometheus registry so each Server
// instance scrapes independently.
type metrics struct {
	registry       *prometheus.Registry
	investigations *prometheus.CounterVec
	steps          *prometheus.CounterVec
	duration       prometheus.Histogram
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	m := &metrics{
		registry: reg,
		investigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "haci_investigations_total",
			Help: "Investigations finished, by final status.",
		}, []string{"status"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "haci_steps_total",
			Help: "Steps executed, by phase.",
		}, []string{"phase"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "haci_investigation_duration_seconds",
			Help:    "Wall-clock duration of finished investigations.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.investigations, m.steps, m.duration)
	reg.MustRegister(collectors.NewGoCollector())
	return m
}
