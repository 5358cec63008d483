package mail

import (
	"context"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

type loggerTransport struct {
	log *logger.Logger
}

// NewLoggerTransport writes messages to the log instead of sending them.
func NewLoggerTransport(log *logger.Logger) Transport {
	return &loggerTransport{log: log.With("transport", "LoggerTransport")}
}

func (t *loggerTransport) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	images := make([]string, 0, len(msg.InlineImages))
	for _, img := range msg.InlineImages {
		images = append(images, img.ContentID)
	}
	files := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		files = append(files, a.Filename)
	}
	t.log.Info("Mail sent",
		"subject", msg.Subject,
		"recipients", msg.To,
		"inline_images", images,
		"attachments", files,
	)
	t.log.Debug("Mail body", "subject", msg.Subject, "html", msg.HTML)
	return nil
}
