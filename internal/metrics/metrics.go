package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registration outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	Registry      *prometheus.Registry
	Registrations *prometheus.CounterVec
	SheetAppends  *prometheus.CounterVec
	SheetLatency  prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Registration submissions by outcome.",
		}, []string{"outcome"}),
		SheetAppends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sheet_appends_total",
			Help: "Spreadsheet mirror appends by outcome.",
		}, []string{"outcome"}),
		SheetLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sheet_append_duration_seconds",
			Help:    "Time spent appending a row to the spreadsheet.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.Registrations, m.SheetAppends, m.SheetLatency)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
