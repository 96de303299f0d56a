// Package telemetry declares the Prometheus collectors exposed on /metrics.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the analytics collectors.
const (
	OutcomeOK       = "ok"
	OutcomeNoData   = "no_data"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

var (
	// Ingestion
	ReadingsIngestedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "esports_readings_ingested_total",
		Help: "Biometric readings submitted, by result",
	}, []string{"result"})

	// Analytics
	AnalyticsRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "esports_analytics_runs_total",
		Help: "Analytics computations, by operation and outcome",
	}, []string{"operation", "outcome"})

	AnalyticsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "esports_analytics_duration_seconds",
		Help:    "Latency of analytics computations including store reads",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	PlayerStatusTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "esports_player_status_total",
		Help: "Player classifications produced, by status",
	}, []string{"status"})

	PlayersAtRisk = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "esports_players_at_risk",
		Help: "Players at risk in the most recent dashboard overview",
	})

	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "esports_http_requests_total",
		Help: "HTTP requests served, by method, route and status code",
	}, []string{"method", "route", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "esports_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// ObserveAnalytics records one analytics run.
func ObserveAnalytics(operation, outcome string, took time.Duration) {
	AnalyticsRunsTotal.WithLabelValues(operation, outcome).Inc()
	AnalyticsDuration.WithLabelValues(operation).Observe(took.Seconds())
}
