package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticket-triage/backend/internal/db"
	"github.com/ticket-triage/backend/internal/model"
	"github.com/ticket-triage/backend/internal/service"
)

type AnalysisHandler struct {
	pipeline *service.PipelineService
	repo     *db.Postgres
}

func NewAnalysisHandler(pipeline *service.PipelineService, repo *db.Postgres) *AnalysisHandler {
	return &AnalysisHandler{pipeline: pipeline, repo: repo}
}

// GetAnalyses godoc
// @Summary List analysis results
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by processed status"
// @Param limit query int false "Max rows (default 50)"
// @Success 200 {array} model.ProcessedTicket
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/analysis [get]
func (h *AnalysisHandler) GetAnalyses(c *gin.Context) {
	status := c.Query("status")
	limit := parseLimit(c.Query("limit"), 50)

	list, err := h.repo.GetProcessedTickets(c.Request.Context(), status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// RunAnalysis godoc
// @Summary Analyze all unprocessed tickets
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.RunAnalysisResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/analysis/run [post]
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	summary, err := h.pipeline.RunAll(c.Request.Context(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	message := fmt.Sprintf("Analyzed %d tickets (%d saved, %d failed)",
		summary.Processed, summary.Saved, summary.Failed)
	if summary.NoOp() {
		message = "No unprocessed tickets"
	}

	c.JSON(http.StatusOK, model.RunAnalysisResponse{
		Status:  "success",
		Message: message,
		Summary: summary,
	})
}
