package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/oriently/oriently-backend/internal/clients/mailerlite"
	"github.com/oriently/oriently-backend/internal/pkg/ctxutil"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

// ProfileEmail is everything the result email needs.
type ProfileEmail struct {
	FirstName        string
	Email            string
	Profile          string
	SuggestedCourses []string
	City             string
	Province         string
	Region           string
}

// NotificationService delivers the profile email. Best-effort by contract:
// the return value reports whether the provider confirmed the send; it
// never errors, and callers must not fail the surrounding flow on false.
type NotificationService interface {
	SendProfileEmail(ctx context.Context, req ProfileEmail) bool
}

type notificationService struct {
	log    *logger.Logger
	client mailerlite.Client
}

// NewNotificationService accepts a nil client; sends then report false.
func NewNotificationService(log *logger.Logger, client mailerlite.Client) NotificationService {
	return &notificationService{
		log:    log.With("service", "NotificationService"),
		client: client,
	}
}

func (s *notificationService) SendProfileEmail(ctx context.Context, req ProfileEmail) bool {
	ctx = ctxutil.Default(ctx)
	log := s.log.With("email", req.Email)

	if s.client == nil {
		log.Warn("Email client not configured, profile email skipped")
		return false
	}

	result, err := s.client.SendEmail(ctx, mailerlite.SendEmailRequest{
		ToEmail: req.Email,
		ToName:  req.FirstName,
		Subject: fmt.Sprintf("%s, ecco il tuo profilo professionale! 🎯", req.FirstName),
		HTML:    buildProfileEmailHTML(req),
	})
	if err != nil {
		log.Warn("Profile email send failed", "error", err.Error())
		return false
	}

	log.Info("Profile email sent", "message_id", result.ID)
	return true
}

func buildProfileEmailHTML(req ProfileEmail) string {
	locationText := req.City
	if req.Province != "" && req.Region != "" {
		locationText = fmt.Sprintf("%s, %s - %s", req.City, req.Province, req.Region)
	}

	var courseList strings.Builder
	for i, course := range req.SuggestedCourses {
		fmt.Fprintf(&courseList, `
      <div style="margin: 15px 0; padding: 15px; background-color: #f8f9fa; border-radius: 8px; border-left: 4px solid #1E6AE2;">
        <h4 style="margin: 0 0 8px 0; color: #1E6AE2; font-size: 16px;">%d. %s</h4>
      </div>`, i+1, course)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Il tuo profilo professionale</title>
  </head>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #1E6AE2, #7C3AED); padding: 30px; border-radius: 10px; text-align: center; margin-bottom: 30px;">
      <h1 style="color: white; margin: 0; font-size: 28px;">🎯 Il tuo profilo professionale</h1>
      <p style="color: white; opacity: 0.9; margin: 10px 0 0 0;">Oriently - Quiz di orientamento</p>
    </div>

    <div style="background-color: #fff; padding: 25px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); margin-bottom: 25px;">
      <h2 style="color: #1E6AE2; margin-top: 0;">Ciao %s! 👋</h2>
      <p style="font-size: 16px; line-height: 1.8;">%s</p>
      <div style="margin-top: 15px; padding: 10px; background-color: #f0f7ff; border-radius: 5px;">
        <p style="margin: 0; color: #666; font-size: 14px;">📍 Località: %s</p>
      </div>
    </div>

    <div style="background-color: #fff; padding: 25px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); margin-bottom: 25px;">
      <h3 style="color: #1E6AE2; margin-top: 0;">Percorsi consigliati per te:</h3>%s
    </div>

    <div style="text-align: center; padding: 20px; background-color: #f8f9fa; border-radius: 10px;">
      <p style="margin: 0; color: #666; font-size: 14px;">
        Questo è il risultato del tuo quiz di orientamento professionale.<br>
        Buona fortuna per il tuo percorso! 🚀
      </p>
    </div>
  </body>
</html>`, req.FirstName, req.Profile, locationText, courseList.String())
}
