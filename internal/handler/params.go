package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/esports-health-service/internal/service"
)

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		return 0, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer"}})
	}
	return id, nil
}

// parseHours reads ?hours, falling back to def when it is absent. Range checks
// belong to the service.
func parseHours(c *gin.Context, def int) (int, error) {
	raw, ok := c.GetQuery("hours")
	if !ok {
		return def, nil
	}
	h, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, service.NewInvalidInputError([]service.FieldError{{Field: "hours", Message: "must be a valid integer"}})
	}
	return h, nil
}
