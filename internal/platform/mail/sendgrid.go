package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
	"github.com/yungbote/deliverysla-backend/internal/platform/sendgrid"
)

type sendGridTransport struct {
	log    *logger.Logger
	client sendgrid.Client
}

func NewSendGridTransport(cfg Config, log *logger.Logger) (Transport, error) {
	client, err := sendgrid.New(log, sendgrid.Config{
		APIKey:           cfg.SendGridAPIKey,
		BaseURL:          cfg.SendGridBaseURL,
		DefaultFromEmail: cfg.From,
		DefaultFromName:  cfg.FromName,
		Timeout:          cfg.SendGridTimeout,
		MaxRetries:       cfg.SendGridMaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("init sendgrid: %w", err)
	}
	return newSendGridTransport(client, log), nil
}

func newSendGridTransport(client sendgrid.Client, log *logger.Logger) *sendGridTransport {
	return &sendGridTransport{log: log.With("transport", "SendGridTransport"), client: client}
}

func (t *sendGridTransport) Send(ctx context.Context, msg Message) error {
	to := make([]sendgrid.EmailAddress, 0, len(msg.To))
	for _, addr := range msg.To {
		if a := strings.TrimSpace(addr); a != "" {
			to = append(to, sendgrid.EmailAddress{Email: a})
		}
	}
	if len(to) == 0 {
		return fmt.Errorf("mail: no recipients")
	}

	atts := make([]sendgrid.Attachment, 0, len(msg.InlineImages)+len(msg.Attachments))
	for _, img := range msg.InlineImages {
		atts = append(atts, sendgrid.Attachment{
			Filename:    img.Filename,
			MIMEType:    img.ContentType,
			Content:     img.Data,
			Disposition: "inline",
			ContentID:   img.ContentID,
		})
	}
	for _, a := range msg.Attachments {
		atts = append(atts, sendgrid.Attachment{
			Filename:    a.Filename,
			MIMEType:    a.ContentType,
			Content:     a.Data,
			Disposition: "attachment",
		})
	}

	res, err := t.client.Send(ctx, sendgrid.SendEmailRequest{
		From:        sendgrid.EmailAddress{Email: msg.From},
		To:          to,
		Subject:     msg.Subject,
		HTML:        msg.HTML,
		Attachments: atts,
	})
	if err != nil {
		return err
	}
	t.log.Debug("Mail accepted", "message_id", res.MessageID, "recipients", msg.To)
	return nil
}
