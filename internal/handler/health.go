package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

// Pinger is what readiness needs from the reading store.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readinessTimeout = 2 * time.Second

type HealthHandler struct {
	store   Pinger
	clock   clockwork.Clock
	started time.Time
}

func NewHealthHandler(store Pinger, clock clockwork.Clock) *HealthHandler {
	return &HealthHandler{store: store, clock: clock, started: clock.Now()}
}

// Liveness never touches the store.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "alive",
		"uptime_seconds": int64(h.clock.Since(h.started).Seconds()),
	})
}

// Readiness answers 503 when the store is missing or does not reply within readinessTimeout.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "reading store not configured"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	start := h.clock.Now()
	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":           "ready",
		"store_latency_ms": h.clock.Since(start).Milliseconds(),
	})
}
