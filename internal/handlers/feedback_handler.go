package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tracklet-app/tracklet/internal/dtos"
	"github.com/tracklet-app/tracklet/internal/services"
)

// FeedbackHandler accepts user feedback and forwards it as an email.
type FeedbackHandler struct {
	Feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{Feedback: feedback}
}

// Submit is POST /api/feedback. Validation failures never reach the email
// dispatch.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dtos.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	if err := h.Feedback.Send(c.Request.Context(), req.Type, req.Feedback); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
