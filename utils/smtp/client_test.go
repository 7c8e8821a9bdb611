package smtp

import (
	"errors"
	"mime"
	netsmtp "net/smtp"
	"strings"
	"testing"
	"time"

	"hallin-site/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	c := NewSMTPClient(config.SMTPConfig{SMTPAddr: "smtp.example.com", SMTPPort: 465, SMTPMail: "www@re.hallin.media"})
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	msg := string(c.BuildMessage(Message{
		To:          []string{"a@x.com", "b@x.com"},
		Subject:     "New contact message from Ada",
		HTML:        "<p>hi</p>",
		DisplayName: "Contact via Website",
		ReplyTo:     "ada@example.com",
	}, now))

	lines, body := splitMessage(t, msg)
	assert.Equal(t, "<p>hi</p>", body)
	assert.Contains(t, lines, "From: Contact via Website <www@re.hallin.media>")
	assert.Contains(t, lines, "To: a@x.com, b@x.com")
	assert.Contains(t, lines, "Reply-To: ada@example.com")
	assert.Contains(t, lines, "Subject: New contact message from Ada")
	assert.Contains(t, lines, "Date: "+now.Format(time.RFC1123Z))
	assert.Equal(t, "smtp.example.com:465", c.Addr)
}

func splitMessage(t *testing.T, msg string) ([]string, string) {
	t.Helper()
	head, body, ok := strings.Cut(msg, "\r\n\r\n")
	require.True(t, ok)
	return strings.Split(head, "\r\n"), body
}

func TestBuildMessage_LineBreaksCannotAddHeaders(t *testing.T) {
	c := NewSMTPClient(config.SMTPConfig{SMTPAddr: "smtp.example.com", SMTPPort: 465, SMTPMail: "www@re.hallin.media"})

	msg := string(c.BuildMessage(Message{
		To:          []string{"a@b.com"},
		Subject:     "New contact message from Eve\r\nBcc: victim@example.com\r\n\r\n<p>spoofed</p>",
		HTML:        "<p>real</p>",
		DisplayName: "Contact\nX-Injected: yes",
		ReplyTo:     "eve@example.com\r\nCc: other@example.com",
	}, time.Now()))

	lines, body := splitMessage(t, msg)
	assert.Equal(t, "<p>real</p>", body)
	assert.Len(t, lines, 7)
	for _, line := range lines {
		assert.False(t, strings.HasPrefix(line, "Bcc:"), line)
		assert.False(t, strings.HasPrefix(line, "Cc:"), line)
		assert.False(t, strings.HasPrefix(line, "X-Injected:"), line)
		assert.NotContains(t, line, "\r")
		assert.NotContains(t, line, "\n")
	}
	assert.Contains(t, lines, "Subject: New contact message from Eve Bcc: victim@example.com  <p>spoofed</p>")
	assert.Contains(t, lines, "Reply-To: eve@example.com Cc: other@example.com")
}

func TestBuildMessage_EncodesNonASCIIHeaders(t *testing.T) {
	c := NewSMTPClient(config.SMTPConfig{SMTPAddr: "smtp.example.com", SMTPPort: 465, SMTPMail: "www@re.hallin.media"})

	msg := string(c.BuildMessage(Message{
		To:          []string{"a@b.com"},
		Subject:     "New contact message from Åsa",
		DisplayName: "Kontakt via Webbplats ✉",
	}, time.Now()))

	lines, _ := splitMessage(t, msg)
	assert.Contains(t, lines, "Subject: "+mime.QEncoding.Encode("utf-8", "New contact message from Åsa"))
	assert.Contains(t, lines, "From: "+mime.QEncoding.Encode("utf-8", "Kontakt via Webbplats ✉")+" <www@re.hallin.media>")

	dec := new(mime.WordDecoder)
	for _, line := range lines {
		if subject, ok := strings.CutPrefix(line, "Subject: "); ok {
			decoded, err := dec.DecodeHeader(subject)
			require.NoError(t, err)
			assert.Equal(t, "New contact message from Åsa", decoded)
		}
	}
}

func TestSendUsesTransport(t *testing.T) {
	var gotTo []string
	c := NewSMTPClient(config.SMTPConfig{SMTPAddr: "smtp.example.com", SMTPPort: 465, SMTPMail: "www@re.hallin.media"}).
		WithSender(func(addr string, auth netsmtp.Auth, from string, to []string, msg []byte) error {
			gotTo = to
			assert.Equal(t, "www@re.hallin.media", from)
			return nil
		})

	require.NoError(t, c.Send(Message{To: []string{"a@x.com"}, Subject: "s", HTML: "b"}))
	assert.Equal(t, []string{"a@x.com"}, gotTo)

	c.WithSender(func(string, netsmtp.Auth, string, []string, []byte) error { return errors.New("dial") })
	assert.Error(t, c.Send(Message{To: []string{"a@x.com"}}))
}
