package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/oriently/oriently-backend/internal/clients/openai"
	types "github.com/oriently/oriently-backend/internal/domain"
	"github.com/oriently/oriently-backend/internal/pkg/ctxutil"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
	"github.com/oriently/oriently-backend/internal/quiz"
)

// ProfileService turns quiz answers into a generated profile. The remote
// text-generation call can fail in four distinct ways (transport, HTTP
// status, JSON parse, semantic validation); every one of them resolves to
// the local keyword fallback, so GenerateProfile never fails.
type ProfileService interface {
	GenerateProfile(ctx context.Context, answers []types.Answer, firstName, email string) types.GeneratedProfile
	ComputeStaticProfile(answers []types.Answer) (types.Category, types.ScoreVector, types.Profile)
}

type profileService struct {
	log  *logger.Logger
	bank *quiz.Bank
	ai   openai.Client
}

// NewProfileService wires the bank and the AI client. A nil AI client is
// allowed: every generation then takes the fallback path.
func NewProfileService(log *logger.Logger, bank *quiz.Bank, ai openai.Client) ProfileService {
	return &profileService{
		log:  log.With("service", "ProfileService"),
		bank: bank,
		ai:   ai,
	}
}

func (s *profileService) ComputeStaticProfile(answers []types.Answer) (types.Category, types.ScoreVector, types.Profile) {
	winner, scores := quiz.ComputeProfile(answers, s.bank.Questions)
	return winner, scores, s.bank.ResolveProfile(winner)
}

func (s *profileService) GenerateProfile(ctx context.Context, answers []types.Answer, firstName, email string) types.GeneratedProfile {
	ctx = ctxutil.Default(ctx)
	log := s.log.With("email", email)

	if s.ai == nil {
		log.Warn("AI client not configured, using local fallback")
		return s.fallback(answers, firstName)
	}

	content, err := s.ai.GenerateText(ctx, systemPrompt, s.buildPrompt(answers, firstName))
	if err != nil {
		var httpErr *openai.HTTPError
		if errors.As(err, &httpErr) {
			log.Warn("AI call failed with HTTP error, using local fallback",
				"status", httpErr.StatusCode)
		} else {
			log.Warn("AI call failed with transport error, using local fallback",
				"error", err.Error())
		}
		return s.fallback(answers, firstName)
	}

	parsed, err := parseGeneratedProfile(content)
	if err != nil {
		log.Warn("AI response is not valid JSON, using local fallback",
			"error", err.Error())
		return s.fallback(answers, firstName)
	}
	if strings.TrimSpace(parsed.Profile) == "" {
		log.Warn("AI response missing profile text, using local fallback")
		return s.fallback(answers, firstName)
	}

	// Wrong course counts are corrected, not rejected: truncate past three,
	// pad short lists from the defaults.
	parsed.SuggestedCourses = s.bank.PadCourses(parsed.SuggestedCourses)

	log.Info("AI profile generated", "courses", len(parsed.SuggestedCourses))
	return *parsed
}

func (s *profileService) fallback(answers []types.Answer, firstName string) types.GeneratedProfile {
	return s.bank.FallbackProfile(answers, firstName)
}

const systemPrompt = "Sei un consulente di carriera esperto che aiuta le persone a trovare il loro percorso professionale ideale."

func (s *profileService) buildPrompt(answers []types.Answer, firstName string) string {
	var answersText strings.Builder
	for i, a := range answers {
		fmt.Fprintf(&answersText, "Domanda %d: %s\n", i+1, a.Value)
	}

	courseTitles := make([]string, 0, len(s.bank.Catalog))
	for _, c := range s.bank.Catalog {
		courseTitles = append(courseTitles, fmt.Sprintf("%s (%s)", c.Title, c.Provider))
	}

	return fmt.Sprintf(`Analizza le seguenti risposte del quiz di orientamento professionale e genera:

1. Un profilo professionale personalizzato in italiano (massimo 3-4 frasi)
2. Suggerisci esattamente 3 corsi dalla lista seguente che sono più adatti:

%s

Risposte del quiz:
%s
Nome dell'utente: %s

Rispondi in formato JSON:
{
  "profile": "Il tuo profilo professionale personalizzato...",
  "suggestedCourses": ["Corso 1", "Corso 2", "Corso 3"]
}`, strings.Join(courseTitles, "\n"), answersText.String(), firstName)
}

type generatedProfilePayload struct {
	Profile          string   `json:"profile"`
	SuggestedCourses []string `json:"suggestedCourses"`
	Courses          []string `json:"courses"`
	ErrorMessage     string   `json:"error"`
}

// parseGeneratedProfile decodes the assistant content, stripping markdown
// fences and repairing almost-JSON before giving up.
func parseGeneratedProfile(content string) (*types.GeneratedProfile, error) {
	content = stripCodeFences(content)

	var payload generatedProfilePayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return nil, fmt.Errorf("unmarshal failed (%v) and repair failed: %w", err, repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
			return nil, fmt.Errorf("unmarshal repaired content: %w", err)
		}
	}

	if payload.ErrorMessage != "" {
		return nil, fmt.Errorf("provider returned error field: %s", payload.ErrorMessage)
	}

	courses := payload.SuggestedCourses
	if len(courses) == 0 {
		courses = payload.Courses
	}
	return &types.GeneratedProfile{
		Profile:          payload.Profile,
		SuggestedCourses: courses,
	}, nil
}

func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
