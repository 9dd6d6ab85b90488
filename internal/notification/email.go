package notification

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/config"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/logger"
	"github.com/resend/resend-go/v2"
)

// EmailSink delivers notifications over email through Resend.
type EmailSink struct {
	client      *resend.Client
	fromAddress string
	enabled     bool
	logger      *logger.Logger
}

// NewEmailSink creates an email sink from configuration. When email is
// disabled the sink logs and skips sends instead of failing, which
// keeps the batch jobs usable in local development.
func NewEmailSink(cfg *config.Configuration, logger *logger.Logger) *EmailSink {
	var client *resend.Client
	if cfg.Email.Enabled && cfg.Email.APIKey != "" {
		client = resend.NewClient(cfg.Email.APIKey)
	}
	return &EmailSink{
		client:      client,
		fromAddress: cfg.Email.FromAddress,
		enabled:     cfg.Email.Enabled && client != nil,
		logger:      logger,
	}
}

func (s *EmailSink) Notify(ctx context.Context, n *Notification) error {
	if n.Channel != ChannelEmail {
		return ierr.NewError("unsupported channel").
			WithHintf("Channel '%s' is not supported by the email sink", n.Channel).
			Mark(ierr.ErrValidation)
	}

	if !s.enabled {
		s.logger.Warnw("email sink is disabled, skipping notification",
			"recipient_id", n.RecipientID,
			"subject", n.Subject,
		)
		return nil
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.fromAddress,
		To:      []string{n.Recipient},
		Subject: n.Subject,
		Text:    n.Body,
	})
	if err != nil {
		s.logger.Errorw("failed to send notification email",
			"error", err,
			"recipient_id", n.RecipientID,
			"subject", n.Subject,
		)
		return ierr.WithError(err).
			WithHint("Notification delivery failed").
			WithReportableDetails(map[string]interface{}{
				"recipient_id": n.RecipientID,
				"channel":      string(n.Channel),
			}).
			Mark(ierr.ErrSinkUnavailable)
	}

	s.logger.Infow("notification email sent",
		"message_id", sent.Id,
		"recipient_id", n.RecipientID,
		"subject", n.Subject,
	)
	return nil
}
