package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticket-triage/backend/internal/model"
	"github.com/ticket-triage/backend/internal/service"
)

type FeedbackHandler struct {
	svc *service.FeedbackService
}

func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// CreateFeedback godoc
// @Summary Submit agent feedback on an analysis
// @Description Applied feedback also moves the tracker ticket to Done and leaves an analysis comment.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateFeedbackRequest true "Feedback payload"
// @Success 200 {object} model.FeedbackResult
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/feedback [post]
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req model.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.Submit(c.Request.Context(), user.LoginID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFeedback) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetFeedback godoc
// @Summary List feedback for a ticket
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param ticket_id query string true "Ticket ID"
// @Param limit query int false "Max rows (default 100)"
// @Success 200 {array} model.AgentFeedback
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/feedback [get]
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	ticketID := c.Query("ticket_id")
	if ticketID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket_id is required"})
		return
	}

	list, err := h.svc.ListByTicket(c.Request.Context(), ticketID, parseLimit(c.Query("limit"), 100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}
