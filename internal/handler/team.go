package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/maxviazov/esports-health-service/internal/service"
	"github.com/maxviazov/esports-health-service/pkg/response"
)

type TeamHandler struct {
	svc   service.AnalyticsService
	clock clockwork.Clock
}

func NewTeamHandler(svc service.AnalyticsService, clock clockwork.Clock) *TeamHandler {
	return &TeamHandler{svc: svc, clock: clock}
}

// Register mounts /teams/:team/stats. Team names are plain strings, so clients
// must URL-escape spaces.
func (h *TeamHandler) Register(r *gin.RouterGroup) {
	r.GET(teamsPath+"/:team/stats", h.stats)
}

func (h *TeamHandler) stats(c *gin.Context) {
	rep, err := h.svc.TeamStats(c.Request.Context(), c.Param("team"), h.clock.Now())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, rep)
}
