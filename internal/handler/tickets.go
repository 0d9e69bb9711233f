package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ticket-triage/backend/internal/model"
	"github.com/ticket-triage/backend/internal/service"
)

type TicketHandler struct {
	svc       *service.TicketService
	embedding *service.EmbeddingService
}

func NewTicketHandler(svc *service.TicketService, embedding *service.EmbeddingService) *TicketHandler {
	return &TicketHandler{svc: svc, embedding: embedding}
}

// GetTickets godoc
// @Summary List stored tickets
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by ticket status"
// @Param limit query int false "Max rows (default 100)"
// @Success 200 {array} model.Ticket
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/tickets [get]
func (h *TicketHandler) GetTickets(c *gin.Context) {
	status := c.Query("status")
	limit := parseLimit(c.Query("limit"), 100)

	tickets, err := h.svc.List(c.Request.Context(), status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// FetchTickets godoc
// @Summary Fetch tickets from the issue tracker
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.FetchTicketsRequest false "Fetch window"
// @Success 200 {object} model.FetchTicketsResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/tickets/fetch [post]
func (h *TicketHandler) FetchTickets(c *gin.Context) {
	var req model.FetchTicketsRequest
	// body 없이 호출하면 기본 조회 범위 사용
	_ = c.ShouldBindJSON(&req)

	res, err := h.svc.FetchAndStore(c.Request.Context(), req.DaysBack, req.MaxResults)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetTicket godoc
// @Summary Get a single ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} model.Ticket
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if ticket == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// FindSimilar godoc
// @Summary Find similar tickets by embedding distance
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Param limit query int false "Max rows (default 5)"
// @Success 200 {array} model.SimilarTicket
// @Failure 404 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /api/v1/tickets/{id}/similar [get]
func (h *TicketHandler) FindSimilar(c *gin.Context) {
	if !h.embedding.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "embedding backend unavailable"})
		return
	}

	ticket, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if ticket == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}

	limit := parseLimit(c.Query("limit"), 5)
	similar, err := h.embedding.FindSimilar(c.Request.Context(), ticket.ID, ticket.Summary, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, similar)
}

func parseLimit(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return int32(parsed)
}
