package app

import (
	"fmt"

	"github.com/yungbote/automate-backend/internal/observability"
	"github.com/yungbote/automate-backend/internal/platform/logger"
	"github.com/yungbote/automate-backend/internal/platform/sendgrid"
	"github.com/yungbote/automate-backend/internal/platform/twilio"
)

type Clients struct {
	Mailer sendgrid.Client
	SMS    twilio.Client
}

func wireClients(log *logger.Logger, cfg *Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")
	mailer, err := sendgrid.New(log, sendgrid.Config{
		APIKey:           cfg.Mail.APIKey,
		BaseURL:          cfg.Mail.BaseURL,
		DefaultFromEmail: cfg.Mail.FromEmail,
		DefaultFromName:  cfg.Mail.FromName,
		Timeout:          cfg.Mail.Timeout,
		MaxRetries:       cfg.Mail.MaxRetries,
		BreakerFailures:  cfg.Mail.BreakerTrip,
	}, metrics)
	if err != nil {
		return Clients{}, fmt.Errorf("init sendgrid: %w", err)
	}
	sms, err := twilio.New(log, twilio.Config{
		AccountSID:          cfg.SMS.AccountSID,
		AuthToken:           cfg.SMS.AuthToken,
		APIKey:              cfg.SMS.APIKey,
		APIKeySecret:        cfg.SMS.APIKeySecret,
		BaseURL:             cfg.SMS.BaseURL,
		FromNumber:          cfg.SMS.FromNumber,
		MessagingServiceSID: cfg.SMS.MessagingServiceSID,
		Timeout:             cfg.SMS.Timeout,
		MaxRetries:          cfg.SMS.MaxRetries,
	}, metrics)
	if err != nil {
		return Clients{}, fmt.Errorf("init twilio: %w", err)
	}
	return Clients{Mailer: mailer, SMS: sms}, nil
}
