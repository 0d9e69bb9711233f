package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticket-triage/backend/internal/model"
	"github.com/ticket-triage/backend/internal/service"
)

type MaintenanceHandler struct {
	svc *service.MaintenanceService
}

func NewMaintenanceHandler(svc *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc}
}

// Integrity godoc
// @Summary Report duplicate and orphaned analysis records
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.IntegrityReport
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/maintenance/integrity [get]
func (h *MaintenanceHandler) Integrity(c *gin.Context) {
	report, err := h.svc.Integrity(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Dedup godoc
// @Summary Remove duplicate analysis records, keeping the newest per ticket
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.MaintenanceResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/maintenance/dedup [post]
func (h *MaintenanceHandler) Dedup(c *gin.Context) {
	removed, err := h.svc.PruneDuplicates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.MaintenanceResponse{Status: "success", Removed: removed})
}

// Orphans godoc
// @Summary Remove analysis records whose ticket no longer exists
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.MaintenanceResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/maintenance/orphans [post]
func (h *MaintenanceHandler) Orphans(c *gin.Context) {
	removed, err := h.svc.PruneOrphans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.MaintenanceResponse{Status: "success", Removed: removed})
}

// Reset godoc
// @Summary Delete all analysis history
// @Description Requires confirm=true. Without it nothing is deleted and 428 is returned.
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Param confirm query bool true "Must be true to proceed"
// @Success 200 {object} model.MaintenanceResponse
// @Failure 428 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/maintenance/reset [post]
func (h *MaintenanceHandler) Reset(c *gin.Context) {
	confirm := c.Query("confirm") == "true"

	removed, err := h.svc.Reset(c.Request.Context(), confirm)
	if err != nil {
		if errors.Is(err, service.ErrConfirmationRequired) {
			c.JSON(http.StatusPreconditionRequired, gin.H{"error": "confirm=true is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.MaintenanceResponse{Status: "success", Removed: removed})
}
