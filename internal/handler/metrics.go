package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticket-triage/backend/internal/db"
)

type MetricsHandler struct {
	repo *db.Postgres
}

func NewMetricsHandler(repo *db.Postgres) *MetricsHandler {
	return &MetricsHandler{repo: repo}
}

// GetMetrics godoc
// @Summary Dashboard metrics
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DashboardMetrics
// @Router /api/v1/metrics [get]
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.repo.GetDashboardMetrics(c.Request.Context()))
}

// GetEvents godoc
// @Summary Recent system events
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {array} model.SystemEvent
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/events [get]
func (h *MetricsHandler) GetEvents(c *gin.Context) {
	events, err := h.repo.GetRecentEvents(c.Request.Context(), parseLimit(c.Query("limit"), 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
