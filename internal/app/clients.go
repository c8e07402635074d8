package app

import (
	"github.com/oriently/oriently-backend/internal/clients/mailerlite"
	"github.com/oriently/oriently-backend/internal/clients/openai"
	"github.com/oriently/oriently-backend/internal/clients/redis"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

type Clients struct {
	OpenAI      openai.Client
	MailerLite  mailerlite.Client
	Idempotency redis.IdempotencyStore
}

// wireClients treats every external dependency as optional: a client that
// cannot be configured stays nil and the owning service degrades to its
// fallback behavior instead of blocking startup.
func wireClients(log *logger.Logger) Clients {
	var clients Clients

	aiClient, err := openai.NewClient(log)
	if err != nil {
		log.Warn("AI client disabled, profile generation falls back to keywords", "error", err.Error())
	} else {
		clients.OpenAI = aiClient
	}

	mailClient, err := mailerlite.NewFromEnv(log)
	if err != nil {
		log.Warn("Email client disabled, result emails will be skipped", "error", err.Error())
	} else {
		clients.MailerLite = mailClient
	}

	idem, err := redis.NewIdempotencyStore(log)
	if err != nil {
		log.Warn("Idempotency store disabled, duplicate submits are possible", "error", err.Error())
	} else {
		clients.Idempotency = idem
	}

	return clients
}
