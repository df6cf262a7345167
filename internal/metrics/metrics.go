// Package metrics records mutation and reorder outcomes as Prometheus series.
package metrics

import (
	"strconv"
	"time"

	"github.com/goliatone/go-sections/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Container kinds used as label values.
const (
	ContainerPage     = "page"
	ContainerSection  = "page_section"
	ContainerHomepage = "homepage_section"
)

// Recorder receives operation outcomes from services and the HTTP adapter.
type Recorder interface {
	Mutation(container, operation, site string, err error)
	Reorder(container, site string, changed bool, err error)
	Request(method, route string, status int, elapsed time.Duration)
	Command(command, outcome string, elapsed time.Duration)
}

// Noop discards every observation.
type Noop struct{}

func (Noop) Mutation(string, string, string, error)     {}
func (Noop) Reorder(string, string, bool, error)        {}
func (Noop) Request(string, string, int, time.Duration) {}
func (Noop) Command(string, string, time.Duration)      {}

// Prometheus is a Recorder backed by counters registered on one registerer.
type Prometheus struct {
	mutations *prometheus.CounterVec
	reorders  *prometheus.CounterVec
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	commands  *prometheus.CounterVec
	runtime   *prometheus.HistogramVec
}

// NewPrometheus registers the collectors on reg. A nil reg uses the default
// registerer.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Prometheus{
		mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sections",
				Subsystem: "content",
				Name:      "mutations_total",
				Help:      "Total number of content mutations by container, operation, and outcome",
			},
			[]string{"container", "operation", "site", "outcome"},
		),
		reorders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sections",
				Subsystem: "ordering",
				Name:      "reorders_total",
				Help:      "Total number of reorder requests by outcome",
			},
			[]string{"container", "site", "outcome"},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sections",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of admin API requests",
			},
			[]string{"method", "route", "status_code"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sections",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of admin API requests in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		commands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sections",
				Subsystem: "commands",
				Name:      "executions_total",
				Help:      "Total number of command executions by outcome",
			},
			[]string{"command", "outcome"},
		),
		runtime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sections",
				Subsystem: "commands",
				Name:      "duration_seconds",
				Help:      "Duration of command executions in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}
}

func (p *Prometheus) Mutation(container, operation, site string, err error) {
	p.mutations.WithLabelValues(container, operation, site, domain.Kind(err)).Inc()
}

// Reorder labels successful calls "applied" or "unchanged".
func (p *Prometheus) Reorder(container, site string, changed bool, err error) {
	outcome := domain.Kind(err)
	if err == nil {
		outcome = "unchanged"
		if changed {
			outcome = "applied"
		}
	}
	p.reorders.WithLabelValues(container, site, outcome).Inc()
}

func (p *Prometheus) Request(method, route string, status int, elapsed time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (p *Prometheus) Command(command, outcome string, elapsed time.Duration) {
	p.commands.WithLabelValues(command, outcome).Inc()
	p.runtime.WithLabelValues(command).Observe(elapsed.Seconds())
}
