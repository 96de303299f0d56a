package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/maxviazov/esports-health-service/internal/service"
)

// Dependencies bundles what the HTTP layer needs from the rest of the process.
type Dependencies struct {
	Pinger    Pinger
	Players   service.PlayerService
	Readings  service.ReadingService
	Analytics service.AnalyticsService

	// Clock supplies "now" for every time-windowed call; a fake in tests.
	Clock  clockwork.Clock
	Logger zerolog.Logger

	// OpenAPIPath defaults to DefaultOpenAPIPath.
	OpenAPIPath string

	// RequestTimeout bounds each API request's context. Zero disables it.
	RequestTimeout time.Duration
	// Default lookbacks, in hours, when the client omits ?hours.
	ReadingsHours  int
	AnalyticsHours int
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, d Dependencies) {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.ReadingsHours <= 0 {
		d.ReadingsHours = 24
	}
	if d.AnalyticsHours <= 0 {
		d.AnalyticsHours = 8
	}

	r.Use(RequestLogger(d.Logger), Metrics())

	h := NewHealthHandler(d.Pinger, d.Clock)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs and metrics (root-level)
	NewDocsHandler(d.OpenAPIPath).Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(APIV1Prefix, RequestTimeout(d.RequestTimeout))
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewPlayerHandler(d.Players, d.Readings, d.Analytics, d.Clock, d.ReadingsHours, d.AnalyticsHours).Register(api)
		NewReadingHandler(d.Readings, d.Clock).Register(api)
		NewTeamHandler(d.Analytics, d.Clock).Register(api)
		NewDashboardHandler(d.Analytics, d.Clock).Register(api)
	}
}
