package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/oriently/oriently-backend/internal/domain"
	"github.com/oriently/oriently-backend/internal/http/response"
	pkgerrors "github.com/oriently/oriently-backend/internal/pkg/errors"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
	"github.com/oriently/oriently-backend/internal/quiz"
	"github.com/oriently/oriently-backend/internal/services"
)

type QuizHandler struct {
	log               *logger.Logger
	bank              *quiz.Bank
	profileService    services.ProfileService
	submissionService services.SubmissionService
}

func NewQuizHandler(
	log *logger.Logger,
	bank *quiz.Bank,
	profileService services.ProfileService,
	submissionService services.SubmissionService,
) *QuizHandler {
	return &QuizHandler{
		log:               log.With("handler", "QuizHandler"),
		bank:              bank,
		profileService:    profileService,
		submissionService: submissionService,
	}
}

func (h *QuizHandler) ListQuestions(c *gin.Context) {
	response.RespondOK(c, gin.H{"questions": h.bank.Questions})
}

func (h *QuizHandler) GenerateProfile(c *gin.Context) {
	var req struct {
		Answers   []types.Answer `json:"answers"`
		FirstName string         `json:"firstName"`
		Email     string         `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if len(req.Answers) == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("answers are required"))
		return
	}

	category, scores, profile := h.profileService.ComputeStaticProfile(req.Answers)
	generated := h.profileService.GenerateProfile(c.Request.Context(), req.Answers, req.FirstName, req.Email)

	response.RespondOK(c, gin.H{
		"profile":          generated.Profile,
		"suggestedCourses": generated.SuggestedCourses,
		"category":         category,
		"scores":           scores,
		"profileData":      profile,
	})
}

func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req struct {
		FirstName   string         `json:"first_name"`
		Email       string         `json:"email"`
		City        string         `json:"city"`
		Province    string         `json:"province"`
		Region      string         `json:"region"`
		Country     string         `json:"country"`
		GDPRConsent bool           `json:"gdpr_consent"`
		Answers     []types.Answer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	submitReq := services.SubmitRequest{
		FirstName:      req.FirstName,
		Email:          req.Email,
		City:           req.City,
		Province:       req.Province,
		Region:         req.Region,
		Country:        req.Country,
		GDPRConsent:    req.GDPRConsent,
		Answers:        req.Answers,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	}
	// Reject bad input before the remote profile call is spent.
	if err := h.submissionService.Validate(submitReq); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	_, _, profile := h.profileService.ComputeStaticProfile(req.Answers)
	generated := h.profileService.GenerateProfile(c.Request.Context(), req.Answers, req.FirstName, req.Email)

	submitReq.Profile = profile
	submitReq.GeneratedProfile = generated.Profile
	submitReq.SuggestedCourses = generated.SuggestedCourses

	result, err := h.submissionService.Submit(c.Request.Context(), submitReq)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("SubmitQuiz failed", "error", err.Error())
		response.RespondError(c, http.StatusInternalServerError, "submit_failed", err)
		return
	}

	response.RespondOK(c, gin.H{
		"success":          true,
		"submissionId":     result.Submission.ID,
		"duplicate":        result.Duplicate,
		"emailSent":        result.EmailSent,
		"profile":          generated.Profile,
		"suggestedCourses": generated.SuggestedCourses,
	})
}
