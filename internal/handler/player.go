package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/maxviazov/esports-health-service/internal/repository"
	"github.com/maxviazov/esports-health-service/internal/service"
	"github.com/maxviazov/esports-health-service/pkg/response"
)

type PlayerHandler struct {
	players   service.PlayerService
	readings  service.ReadingService
	analytics service.AnalyticsService
	clock     clockwork.Clock

	readingsHours  int
	analyticsHours int
}

func NewPlayerHandler(players service.PlayerService, readings service.ReadingService, analytics service.AnalyticsService, clock clockwork.Clock, readingsHours, analyticsHours int) *PlayerHandler {
	return &PlayerHandler{
		players:        players,
		readings:       readings,
		analytics:      analytics,
		clock:          clock,
		readingsHours:  readingsHours,
		analyticsHours: analyticsHours,
	}
}

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group(playersPath)
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
		g.DELETE("/:id", h.delete)
		g.GET("/:id/readings", h.listReadings)
		g.GET("/:id/readings/latest", h.latestReading)
		g.GET("/:id/analytics", h.analyze)
		g.GET("/:id/summary", h.summary)
	}
}

func (h *PlayerHandler) create(c *gin.Context) {
	var req service.CreatePlayerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "must be valid JSON"}}))
		return
	}
	player, err := h.players.CreatePlayer(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, player)
}

func (h *PlayerHandler) list(c *gin.Context) {
	// Atoi errors are ignored intentionally, as 0 is a valid default for limit/offset, handled by the service layer.
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.players.ListPlayers(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	player, err := h.players.GetPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.players.DeletePlayer(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlayerHandler) listReadings(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	hours, err := parseHours(c, h.readingsHours)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	rs, err := h.readings.ListReadings(c.Request.Context(), id, hours, h.clock.Now())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, rs)
}

func (h *PlayerHandler) latestReading(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	r, err := h.readings.LatestReading(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, r)
}

func (h *PlayerHandler) analyze(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	hours, err := parseHours(c, h.analyticsHours)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	rep, err := h.analytics.AnalyzePlayer(c.Request.Context(), id, hours, h.clock.Now())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, rep)
}

func (h *PlayerHandler) summary(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	sum, err := h.analytics.PlayerSummary(c.Request.Context(), id, h.clock.Now())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, sum)
}
