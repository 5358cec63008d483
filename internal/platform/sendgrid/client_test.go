package sendgrid

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

func newTestClient(t *testing.T, url string, retries int) Client {
	t.Helper()
	c, err := New(logger.Nop(), Config{
		APIKey:           "sg-test",
		BaseURL:          url,
		DefaultFromEmail: "noreply@example.com",
		DefaultFromName:  "Delivery SLA",
		MaxRetries:       retries,
		BaseBackoff:      time.Millisecond,
	})
	require.NoError(t, err)
	return c
}

func TestSend_WireFormat(t *testing.T) {
	var (
		got        mailSendRequest
		path, auth string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, auth = r.URL.Path, r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("X-Message-Id", "msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	res, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "a@example.com"}, {Email: "b@example.com"}},
		Subject: " Status ",
		HTML:    "<p>hi</p>",
		Attachments: []Attachment{
			{Filename: "logo.png", MIMEType: "image/png", Content: []byte{1, 2, 3}, Disposition: "inline", ContentID: "logo.png"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, res.StatusCode)
	require.Equal(t, "msg-1", res.MessageID)
	require.Equal(t, "/v3/mail/send", path)
	require.Equal(t, "Bearer sg-test", auth)

	require.Equal(t, "noreply@example.com", got.From.Email)
	require.Equal(t, "Delivery SLA", got.From.Name)
	require.Equal(t, "Status", got.Subject)
	require.Len(t, got.Personalizations, 1)
	require.Len(t, got.Personalizations[0].To, 2)
	require.Len(t, got.Attachments, 1)
	require.Equal(t, "inline", got.Attachments[0].Disposition)
	require.Equal(t, "logo.png", got.Attachments[0].ContentID)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), got.Attachments[0].Content)
}

func TestSend_RetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	_, err := c.Send(context.Background(), SendEmailRequest{
		To: []EmailAddress{{Email: "a@example.com"}}, Subject: "s", HTML: "<p>x</p>",
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestSend_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad from"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	_, err := c.Send(context.Background(), SendEmailRequest{
		To: []EmailAddress{{Email: "a@example.com"}}, Subject: "s", HTML: "<p>x</p>",
	})
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.HTTPStatusCode())
	require.Contains(t, he.Error(), "bad from")
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestSend_Validation(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:0", 0)
	_, err := c.Send(context.Background(), SendEmailRequest{Subject: "s", HTML: "x"})
	require.Error(t, err)
	_, err = c.Send(context.Background(), SendEmailRequest{To: []EmailAddress{{Email: "a@example.com"}}, HTML: "x"})
	require.Error(t, err)
	_, err = c.Send(context.Background(), SendEmailRequest{
		To: []EmailAddress{{Email: "a@example.com"}}, Subject: "s", HTML: "x",
		Attachments: []Attachment{{Filename: "empty.pdf"}},
	})
	require.Error(t, err)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(logger.Nop(), Config{})
	require.Error(t, err)
}
