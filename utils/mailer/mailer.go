package mailer

import (
	"context"
	"errors"
	"fmt"

	"hallin-site/config"
	"hallin-site/utils/resend"
	"hallin-site/utils/smtp"
)

type Mail struct {
	DisplayName string
	Subject     string
	HTML        string
	ReplyTo     string
}

type Mailer interface {
	SendMail(ctx context.Context, m Mail) error
}

type Audience interface {
	Subscribe(ctx context.Context, email, firstName string) error
}

// ProviderError carries a provider-side rejection whose message may be shown
// to the submitter verbatim.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string { return e.Message }
func (e *ProviderError) Unwrap() error { return e.Err }

func providerError(err error) error {
	var apiErr *resend.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Message: apiErr.Message, Err: err}
	}
	return err
}

type ResendMailer struct {
	client *resend.Client
	from   string
	to     []string
}

func NewResendMailer(client *resend.Client, from string, to []string) *ResendMailer {
	return &ResendMailer{client: client, from: from, to: to}
}

func (r *ResendMailer) SendMail(ctx context.Context, m Mail) error {
	from := r.from
	if m.DisplayName != "" {
		from = fmt.Sprintf("%s <%s>", m.DisplayName, r.from)
	}
	_, err := r.client.SendEmail(ctx, resend.SendEmailRequest{
		From:    from,
		To:      r.to,
		Subject: m.Subject,
		HTML:    m.HTML,
		ReplyTo: m.ReplyTo,
	})
	return providerError(err)
}

type ResendAudience struct {
	client     *resend.Client
	audienceID string
}

func NewResendAudience(client *resend.Client, audienceID string) *ResendAudience {
	return &ResendAudience{client: client, audienceID: audienceID}
}

func (a *ResendAudience) Subscribe(ctx context.Context, email, firstName string) error {
	_, err := a.client.CreateContact(ctx, a.audienceID, resend.CreateContactRequest{
		Email:        email,
		FirstName:    firstName,
		Unsubscribed: false,
	})
	return providerError(err)
}

type SMTPMailer struct {
	client *smtp.HallinSMTPClient
	to     []string
}

func NewSMTPMailer(client *smtp.HallinSMTPClient, to []string) *SMTPMailer {
	return &SMTPMailer{client: client, to: to}
}

// SendMail ignores ctx: net/smtp has no context-aware API.
func (s *SMTPMailer) SendMail(_ context.Context, m Mail) error {
	return s.client.Send(smtp.Message{
		To:          s.to,
		Subject:     m.Subject,
		HTML:        m.HTML,
		DisplayName: m.DisplayName,
		ReplyTo:     m.ReplyTo,
	})
}

// New picks the transport named in cfg.Mail. The audience is always backed by
// Resend and is nil when no API key is configured.
func New(cfg config.Config, resendClient *resend.Client) (Mailer, Audience, error) {
	var audience Audience
	if resendClient != nil && cfg.Resend.AudienceID != "" {
		audience = NewResendAudience(resendClient, cfg.Resend.AudienceID)
	}
	switch cfg.Mail.Transport {
	case "smtp":
		return NewSMTPMailer(smtp.NewSMTPClient(cfg.SMTP), cfg.Mail.To), audience, nil
	case "resend", "":
		if resendClient == nil {
			return nil, nil, fmt.Errorf("resend transport selected without a client")
		}
		return NewResendMailer(resendClient, cfg.Mail.FromAddress, cfg.Mail.To), audience, nil
	default:
		return nil, nil, fmt.Errorf("unknown mail transport: %q", cfg.Mail.Transport)
	}
}
