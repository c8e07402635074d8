package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/oriently/oriently-backend/internal/http/response"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
	"github.com/oriently/oriently-backend/internal/services"
)

type EmailHandler struct {
	log          *logger.Logger
	notification services.NotificationService
}

func NewEmailHandler(log *logger.Logger, notification services.NotificationService) *EmailHandler {
	return &EmailHandler{
		log:          log.With("handler", "EmailHandler"),
		notification: notification,
	}
}

// SendQuizResult always answers 200; delivery problems surface only through
// the success flag so the frontend flow never breaks on a mail outage.
func (h *EmailHandler) SendQuizResult(c *gin.Context) {
	var req struct {
		FirstName        string   `json:"firstName"`
		Email            string   `json:"email"`
		Profile          string   `json:"profile"`
		SuggestedCourses []string `json:"suggestedCourses"`
		City             string   `json:"city"`
		Province         string   `json:"province"`
		Region           string   `json:"region"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondOK(c, gin.H{"success": false, "message": "invalid request body"})
		return
	}
	if req.Email == "" {
		response.RespondOK(c, gin.H{"success": false, "message": "email is required"})
		return
	}

	sent := h.notification.SendProfileEmail(c.Request.Context(), services.ProfileEmail{
		FirstName:        req.FirstName,
		Email:            req.Email,
		Profile:          req.Profile,
		SuggestedCourses: req.SuggestedCourses,
		City:             req.City,
		Province:         req.Province,
		Region:           req.Region,
	})
	if !sent {
		response.RespondOK(c, gin.H{"success": false, "message": "email could not be sent"})
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}
