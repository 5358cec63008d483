package mail

import (
	"context"
	"testing"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
	"github.com/yungbote/deliverysla-backend/internal/platform/sendgrid"
)

type captureClient struct {
	reqs []sendgrid.SendEmailRequest
}

func (c *captureClient) Send(ctx context.Context, req sendgrid.SendEmailRequest) (*sendgrid.SendEmailResult, error) {
	c.reqs = append(c.reqs, req)
	return &sendgrid.SendEmailResult{StatusCode: 202}, nil
}

func TestConfigKind(t *testing.T) {
	cases := []struct {
		cfg  Config
		want string
	}{
		{Config{}, TransportLogger},
		{Config{Transport: "SendGrid"}, TransportSendGrid},
		{Config{Transport: "sendgrid", LegacyHost: "logger"}, TransportLogger},
		{Config{LegacyHost: "smtp.example.com"}, TransportLogger},
	}
	for _, tc := range cases {
		if got := tc.cfg.Kind(); got != tc.want {
			t.Fatalf("Kind(%+v): want=%q got=%q", tc.cfg, tc.want, got)
		}
	}
}

func TestNew_UnknownTransport(t *testing.T) {
	if _, err := New(Config{Transport: "pigeon"}, logger.Nop()); err == nil {
		t.Fatalf("New: want error for unknown transport")
	}
}

func TestNew_SendGridNeedsKey(t *testing.T) {
	if _, err := New(Config{Transport: TransportSendGrid}, logger.Nop()); err == nil {
		t.Fatalf("New: want error without api key")
	}
}

func TestLoggerTransport_Send(t *testing.T) {
	tr := NewLoggerTransport(logger.Nop())
	if err := tr.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "s"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tr.Send(ctx, Message{}); err == nil {
		t.Fatalf("Send: want context error")
	}
}

func TestSendGridTransport_MapsParts(t *testing.T) {
	cc := &captureClient{}
	tr := newSendGridTransport(cc, logger.Nop())
	err := tr.Send(context.Background(), Message{
		From:    "ops@example.com",
		To:      []string{"a@example.com", " ", "b@example.com"},
		Subject: "Deliverable",
		HTML:    `<img src="cid:logo.png">`,
		InlineImages: []InlineImage{
			{ContentID: "logo.png", Filename: "logo.png", ContentType: "image/png", Data: []byte{1}},
		},
		Attachments: []Attachment{
			{Filename: "guide.pdf", ContentType: "application/pdf", Data: []byte{2}},
		},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(cc.reqs) != 1 {
		t.Fatalf("requests: want=1 got=%d", len(cc.reqs))
	}
	req := cc.reqs[0]
	if len(req.To) != 2 {
		t.Fatalf("to: want=2 got=%d", len(req.To))
	}
	if len(req.Attachments) != 2 {
		t.Fatalf("attachments: want=2 got=%d", len(req.Attachments))
	}
	if a := req.Attachments[0]; a.Disposition != "inline" || a.ContentID != "logo.png" {
		t.Fatalf("inline image: got=%+v", a)
	}
	if a := req.Attachments[1]; a.Disposition != "attachment" || a.ContentID != "" {
		t.Fatalf("attachment: got=%+v", a)
	}
}

func TestSendGridTransport_NoRecipients(t *testing.T) {
	tr := newSendGridTransport(&captureClient{}, logger.Nop())
	if err := tr.Send(context.Background(), Message{To: []string{""}}); err == nil {
		t.Fatalf("Send: want error")
	}
}
