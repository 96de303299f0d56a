package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/maxviazov/esports-health-service/internal/service"
	"github.com/maxviazov/esports-health-service/pkg/response"
)

type DashboardHandler struct {
	svc   service.AnalyticsService
	clock clockwork.Clock
}

func NewDashboardHandler(svc service.AnalyticsService, clock clockwork.Clock) *DashboardHandler {
	return &DashboardHandler{svc: svc, clock: clock}
}

func (h *DashboardHandler) Register(r *gin.RouterGroup) {
	r.GET(dashboardPath+"/overview", h.overview)
}

func (h *DashboardHandler) overview(c *gin.Context) {
	ov, err := h.svc.DashboardOverview(c.Request.Context(), h.clock.Now())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, ov)
}
