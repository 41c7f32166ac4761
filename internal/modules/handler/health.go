package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pilotdata/project/internal/modules/serializer"
	"github.com/pilotdata/project/internal/modules/service"
)

type HealthHandler struct {
	checker service.HealthChecker
}

func NewHealthHandler(checker service.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health godoc
//
//	@Summary		Health check
//	@Description	Reports whether the database answers queries
//	@Tags			health
//	@Success		204
//	@Failure		503	{object}	serializer.Response
//	@Router			/health/ [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if !h.checker.IsOnline(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, serializer.Response{Code: http.StatusServiceUnavailable, Msg: "database is not reachable"})
		return
	}
	c.Status(http.StatusNoContent)
}
