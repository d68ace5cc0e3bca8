// Package metrics holds the prometheus collectors of the dispatch service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logistica_events_published_total",
			Help: "Total number of events handed to subscribers",
		},
		[]string{"scope", "event"},
	)

	EventsDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "logistica_events_dropped_total",
			Help: "Total number of events dropped because a subscriber queue was full",
		},
	)

	Subscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "logistica_subscribers",
			Help: "Number of live subscriber connections",
		},
	)

	OnlineCouriers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "logistica_online_couriers",
			Help: "Number of couriers in the presence registry",
		},
	)

	PresenceEvictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "logistica_presence_evictions_total",
			Help: "Total number of presence entries removed by the staleness sweep",
		},
	)

	AggregatesCommittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logistica_aggregates_committed_total",
			Help: "Total number of aggregates written by committed transactions",
		},
		[]string{"kind"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method"},
	)
)

func init() {
	prometheus.MustRegister(
		EventsPublishedTotal,
		EventsDroppedTotal,
		Subscribers,
		OnlineCouriers,
		PresenceEvictionsTotal,
		AggregatesCommittedTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
