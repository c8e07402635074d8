package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oriently/oriently-backend/internal/http/response"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
	"github.com/oriently/oriently-backend/internal/services"
)

type AdminHandler struct {
	log               *logger.Logger
	authService       services.AdminAuthService
	submissionService services.SubmissionService
}

func NewAdminHandler(
	log *logger.Logger,
	authService services.AdminAuthService,
	submissionService services.SubmissionService,
) *AdminHandler {
	return &AdminHandler{
		log:               log.With("handler", "AdminHandler"),
		authService:       authService,
		submissionService: submissionService,
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		return
	}
	response.RespondOK(c, gin.H{"token": token})
}

func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	subs, total, err := h.submissionService.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("ListSubmissions failed", "error", err.Error())
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"submissions": subs,
		"total":       total,
		"limit":       limit,
		"offset":      offset,
	})
}
