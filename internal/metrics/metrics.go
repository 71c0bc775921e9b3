package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	GamesDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGamesDetected,
			Help: HelpTextGamesDetected,
		},
	)

	GamesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGamesResolved,
			Help: HelpTextGamesResolved,
		},
		[]string{LabelWinningSide},
	)

	GamesNeedsManual = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGamesNeedsManual,
			Help: HelpTextGamesNeedsManual,
		},
	)

	BetsPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBetsPlaced,
			Help: HelpTextBetsPlaced,
		},
		[]string{LabelSide},
	)

	StakeWagered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStakeWagered,
			Help: HelpTextStakeWagered,
		},
	)

	PayoutsPaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePayoutsPaid,
			Help: HelpTextPayoutsPaid,
		},
	)

	StakeLost = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStakeLost,
			Help: HelpTextStakeLost,
		},
	)

	AccountsTracked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAccountsTracked,
			Help: HelpTextAccountsTracked,
		},
	)
)

// Riot API Metrics
var (
	RiotAPIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRiotAPIRequests,
			Help: HelpTextRiotAPIRequests,
		},
		[]string{LabelEndpoint},
	)

	RiotAPIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRiotAPIErrors,
			Help: HelpTextRiotAPIErrors,
		},
		[]string{LabelEndpoint},
	)
)
