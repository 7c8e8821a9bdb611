package smtp

import (
	"crypto/tls"
	"fmt"
	"mime"
	"net/smtp"
	"sort"
	"strings"
	"time"

	"hallin-site/config"
)

func SendMailTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	host := strings.Split(addr, ":")[0]

	conn, err := tls.Dial("tcp", addr, &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         host,
	})
	if err != nil {
		return fmt.Errorf("failed to dial TLS: %w", err)
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func(c *smtp.Client) {
		_ = c.Close()
	}(c)

	if err = c.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	if err = c.Mail(from); err != nil {
		return fmt.Errorf("failed to set mail from: %w", err)
	}
	for _, recipient := range to {
		if err = c.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = wc.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	if err = c.Quit(); err != nil {
		return fmt.Errorf("failed to quit SMTP client: %w", err)
	}
	return nil
}

type SendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type Message struct {
	To          []string
	Subject     string
	HTML        string
	DisplayName string
	ReplyTo     string
}

type HallinSMTPClient struct {
	Addr string
	Auth smtp.Auth
	From string
	send SendFunc
}

func NewSMTPClient(cfg config.SMTPConfig) *HallinSMTPClient {
	addr := fmt.Sprintf("%s:%d", cfg.SMTPAddr, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.SMTPMail, cfg.SMTPPass, cfg.SMTPAddr)
	return &HallinSMTPClient{
		Addr: addr,
		Auth: auth,
		From: cfg.SMTPMail,
		send: SendMailTLS,
	}
}

// WithSender swaps the wire transport; tests use it to capture messages.
func (c *HallinSMTPClient) WithSender(send SendFunc) *HallinSMTPClient {
	c.send = send
	return c
}

var headerLineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// headerValue folds a value onto one line so it cannot start a new header.
func headerValue(s string) string {
	return headerLineBreaks.Replace(s)
}

// encodedWord folds s onto one line and RFC 2047 encodes it when it is not
// plain printable ASCII.
func encodedWord(s string) string {
	return mime.QEncoding.Encode("utf-8", headerValue(s))
}

func (c *HallinSMTPClient) BuildMessage(m Message, now time.Time) []byte {
	headers := make(map[string]string)
	if m.DisplayName != "" {
		headers["From"] = fmt.Sprintf("%s <%s>", encodedWord(m.DisplayName), headerValue(c.From))
	} else {
		headers["From"] = headerValue(c.From)
	}
	to := make([]string, 0, len(m.To))
	for _, addr := range m.To {
		to = append(to, headerValue(addr))
	}
	headers["To"] = strings.Join(to, ", ")
	headers["Subject"] = encodedWord(m.Subject)
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=\"UTF-8\""
	headers["Date"] = now.Format(time.RFC1123Z)
	if m.ReplyTo != "" {
		headers["Reply-To"] = headerValue(m.ReplyTo)
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msgBuilder strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&msgBuilder, "%s: %s\r\n", k, headers[k])
	}
	msgBuilder.WriteString("\r\n")
	msgBuilder.WriteString(m.HTML)
	return []byte(msgBuilder.String())
}

func (c *HallinSMTPClient) Send(m Message) error {
	return c.send(c.Addr, c.Auth, c.From, m.To, c.BuildMessage(m, time.Now()))
}
