package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameGamesDetected     = "games_detected_total"
	MetricNameGamesResolved     = "games_resolved_total"
	MetricNameGamesNeedsManual  = "games_needs_manual_total"
	MetricNameBetsPlaced        = "bets_placed_total"
	MetricNameStakeWagered      = "stake_wagered_total"
	MetricNamePayoutsPaid       = "payouts_paid_total"
	MetricNameStakeLost         = "stake_lost_total"
	MetricNameRiotAPIRequests   = "riot_api_requests_total"
	MetricNameRiotAPIErrors     = "riot_api_errors_total"
	MetricNameAccountsTracked   = "accounts_tracked_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request duration in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextGamesDetected    = "Total number of tracked games detected"
	HelpTextGamesResolved    = "Total number of games resolved"
	HelpTextGamesNeedsManual = "Total number of games flagged for manual resolution"
	HelpTextBetsPlaced       = "Total number of bets placed"
	HelpTextStakeWagered     = "Total stake wagered across all bets"
	HelpTextPayoutsPaid      = "Total payouts credited to winning bettors"
	HelpTextStakeLost        = "Total stake lost on losing bets"
	HelpTextRiotAPIRequests  = "Total number of Riot API requests"
	HelpTextRiotAPIErrors    = "Total number of Riot API request errors"
	HelpTextAccountsTracked  = "Total number of accounts added to tracking"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelSide        = "side"
	LabelWinningSide = "winning_side"
	LabelEndpoint    = "endpoint"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadMismatch = "Event payload did not match expected shape"
	LogMsgMetricsRecorded      = "Metrics recorded for event"
)
