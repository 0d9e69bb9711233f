package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticket-triage/backend/internal/model"
	"github.com/ticket-triage/backend/internal/service"
)

type EmbeddingHandler struct {
	svc *service.EmbeddingService
}

func NewEmbeddingHandler(svc *service.EmbeddingService) *EmbeddingHandler {
	return &EmbeddingHandler{svc: svc}
}

// CreateEmbedding godoc
// @Summary Create ticket embedding
// @Tags embeddings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.EmbeddingRequest true "Ticket embedding payload"
// @Success 200 {object} model.EmbeddingResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/embeddings [post]
func (h *EmbeddingHandler) CreateEmbedding(c *gin.Context) {
	var req model.EmbeddingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TicketID == "" || req.Summary == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket_id and summary are required"})
		return
	}
	id, modelName, err := h.svc.CreateEmbedding(c.Request.Context(), req.TicketID, req.Summary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.EmbeddingResponse{Status: "success", EmbeddingID: id, Model: modelName})
}
