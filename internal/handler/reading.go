package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/maxviazov/esports-health-service/internal/service"
	"github.com/maxviazov/esports-health-service/pkg/response"
)

type ReadingHandler struct {
	svc   service.ReadingService
	clock clockwork.Clock
}

func NewReadingHandler(svc service.ReadingService, clock clockwork.Clock) *ReadingHandler {
	return &ReadingHandler{svc: svc, clock: clock}
}

func (h *ReadingHandler) Register(r *gin.RouterGroup) {
	r.POST(readingsPath, h.record)
}

func (h *ReadingHandler) record(c *gin.Context) {
	var req service.RecordReadingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "must be valid JSON"}}))
		return
	}
	out, err := h.svc.RecordReading(c.Request.Context(), req, h.clock.Now())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, out)
}
