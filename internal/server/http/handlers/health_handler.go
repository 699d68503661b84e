package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderdesk/internal/server/http/dto"
)

// HealthHandler reports whether the database and the board are usable.
type HealthHandler struct {
	health HealthFacade
	orders OrdersFacade
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(health HealthFacade, orders OrdersFacade) *HealthHandler {
	return &HealthHandler{health: health, orders: orders}
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Database: "ok", Dashboard: string(h.orders.Board().Phase)}
	status := http.StatusOK
	if err := h.health.HealthCheck(c.Request.Context()); err != nil {
		resp.Status = "degraded"
		resp.Database = err.Error()
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
