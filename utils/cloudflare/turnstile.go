package cloudflare

import (
	"context"
	"fmt"
	"time"

	"hallin-site/config"
	harukiLogger "hallin-site/utils/logger"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

const DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

type Verifier struct {
	secret    string
	verifyURL string
	client    *resty.Client
	logger    *harukiLogger.Logger
}

func NewVerifier(cfg config.TurnstileConfig, logger *harukiLogger.Logger) *Verifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	verifyURL := cfg.VerifyURL
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	if logger == nil {
		logger = harukiLogger.Default()
	}
	return &Verifier{
		secret:    cfg.SecretKey,
		verifyURL: verifyURL,
		client:    resty.New().SetTimeout(timeout),
		logger:    logger,
	}
}

// ValidateTurnstile checks a proof token against siteverify. It never returns a
// transport error to the caller; failures collapse into internal-error so every
// submission path sees the same shape.
func (v *Verifier) ValidateTurnstile(ctx context.Context, token, remoteIP string) *TurnstileResponse {
	if token == "" {
		return failed(ErrorCodeMissingInputResponse)
	}

	form := map[string]string{
		"secret":   v.secret,
		"response": token,
	}
	if remoteIP != "" {
		form["remoteip"] = remoteIP
	}

	resp, err := v.client.R().
		SetContext(ctx).
		SetFormData(form).
		Post(v.verifyURL)
	if err != nil {
		v.logger.Errorf("Turnstile request failed: %v", err)
		return failed(ErrorCodeInternalError)
	}
	if resp.IsError() {
		v.logger.Errorf("Turnstile request failed: %v", fmt.Errorf("HTTP error: %d", resp.StatusCode()))
		return failed(ErrorCodeInternalError)
	}

	var result TurnstileResponse
	if err := sonic.Unmarshal(resp.Body(), &result); err != nil {
		v.logger.Errorf("Turnstile response decode failed: %v, body: %s", err, string(resp.Body()))
		return failed(ErrorCodeInternalError)
	}
	return &result
}
