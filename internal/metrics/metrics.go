package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ── HTTP request metrics (RED method) ──────────────────────────────────

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vault_dashboard",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vault_dashboard",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vault_dashboard",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being processed.",
	})
)

// ── Upstream fetch metrics ─────────────────────────────────────────────

var (
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vault_dashboard",
		Subsystem: "upstream",
		Name:      "fetch_total",
		Help:      "Total number of upstream fetch attempts per source.",
	}, []string{"source", "status"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vault_dashboard",
		Subsystem: "upstream",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of upstream fetches per source in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"source"})

	FallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vault_dashboard",
		Subsystem: "upstream",
		Name:      "fallback_total",
		Help:      "Total responses served from static fallback values.",
	}, []string{"source"})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vault_dashboard",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Adapter responses served from cache.",
	}, []string{"key"})
)

// ── Dashboard poller metrics ───────────────────────────────────────────

var (
	PollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vault_dashboard",
		Subsystem: "poll",
		Name:      "total",
		Help:      "Total number of dashboard poll attempts per key.",
	}, []string{"key", "status"})

	PollLastSuccess = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vault_dashboard",
		Subsystem: "poll",
		Name:      "last_success_timestamp",
		Help:      "Unix timestamp of the last successful poll per key.",
	}, []string{"key"})

	PollSuperseded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vault_dashboard",
		Subsystem: "poll",
		Name:      "superseded_total",
		Help:      "Poll results dropped because a newer fetch had started.",
	}, []string{"key"})
)

// ── Business metrics ───────────────────────────────────────────────────

var (
	VenueAPR = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vault_dashboard",
		Subsystem: "business",
		Name:      "venue_apr_percent",
		Help:      "Latest headline APR per venue, in percent.",
	}, []string{"venue"})

	VenueTVL = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vault_dashboard",
		Subsystem: "business",
		Name:      "venue_tvl",
		Help:      "Latest vault TVL per venue in quote currency.",
	}, []string{"venue"})

	VenueVolume = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vault_dashboard",
		Subsystem: "business",
		Name:      "venue_volume_24h",
		Help:      "Latest 24h trading volume per venue in quote currency.",
	}, []string{"venue"})
)
