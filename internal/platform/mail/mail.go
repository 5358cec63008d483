package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type InlineImage struct {
	ContentID   string
	Filename    string
	ContentType string
	Data        []byte
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	From         string
	To           []string
	Subject      string
	HTML         string
	InlineImages []InlineImage
	Attachments  []Attachment
}

// Transport delivers one rendered message to all of its recipients.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

const (
	TransportLogger   = "logger"
	TransportSendGrid = "sendgrid"
)

type Config struct {
	Transport string
	// LegacyHost mirrors EMAIL_HOST; the value "logger" forces the logger transport.
	LegacyHost string
	From       string
	FromName   string

	SendGridAPIKey     string
	SendGridBaseURL    string
	SendGridTimeout    time.Duration
	SendGridMaxRetries int
}

// Kind resolves the configured transport name.
func (c Config) Kind() string {
	if strings.EqualFold(strings.TrimSpace(c.LegacyHost), TransportLogger) {
		return TransportLogger
	}
	k := strings.ToLower(strings.TrimSpace(c.Transport))
	if k == "" {
		return TransportLogger
	}
	return k
}

func New(cfg Config, log *logger.Logger) (Transport, error) {
	switch kind := cfg.Kind(); kind {
	case TransportLogger:
		return NewLoggerTransport(log), nil
	case TransportSendGrid:
		return NewSendGridTransport(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported mail transport %q", kind)
	}
}
