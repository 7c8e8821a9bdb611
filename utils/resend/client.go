package resend

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"hallin-site/config"
	harukiLogger "hallin-site/utils/logger"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://api.resend.com"

// APIError is a structured failure reported by the provider. Its message is
// safe to show to the submitter.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resend %s (%d): %s", e.Name, e.StatusCode, e.Message)
}

type Client struct {
	httpClient *resty.Client
	apiKey     string
	baseURL    string
	logger     *harukiLogger.Logger
}

func NewClient(cfg config.ResendConfig, logger *harukiLogger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = harukiLogger.Default()
	}
	return &Client{
		httpClient: resty.New().SetTimeout(timeout),
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		logger:     logger,
	}
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post(c.baseURL + path)
	if err != nil {
		c.logger.Errorf("Resend request to %s failed: %v", path, err)
		return fmt.Errorf("request failed: %w", err)
	}

	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		if err := sonic.Unmarshal(resp.Body(), apiErr); err != nil || apiErr.Message == "" {
			c.logger.Errorf("Resend returned %d with unreadable body: %s", resp.StatusCode(), string(resp.Body()))
			return fmt.Errorf("unexpected status %d", resp.StatusCode())
		}
		apiErr.StatusCode = resp.StatusCode()
		c.logger.Warnf("Resend rejected %s: %v", path, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(resp.Body(), out); err != nil {
		c.logger.Errorf("Resend response decode failed: %v, body: %s", err, string(resp.Body()))
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}

func (c *Client) SendEmail(ctx context.Context, req SendEmailRequest) (*SendEmailResponse, error) {
	var out SendEmailResponse
	if err := c.post(ctx, "/emails", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateContact(ctx context.Context, audienceID string, req CreateContactRequest) (*CreateContactResponse, error) {
	var out CreateContactResponse
	path := "/audiences/" + url.PathEscape(audienceID) + "/contacts"
	if err := c.post(ctx, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
