package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "hallin-site-configs.yaml"

type BackendConfig struct {
	Host          string   `yaml:"host"`
	Port          int      `yaml:"port"`
	LogLevel      string   `yaml:"logLevel"`
	MainLogFile   string   `yaml:"mainLogFile"`
	AccessLog     string   `yaml:"access_log"`
	AccessLogPath string   `yaml:"access_log_path"`
	AllowCORS     []string `yaml:"allow_cors"`
	SSL           bool     `yaml:"ssl"`
	SSLCert       string   `yaml:"ssl_cert"`
	SSLKey        string   `yaml:"ssl_key"`
	Debug         bool     `yaml:"debug"`
	// ProxyHeader names the header carrying the real client address, such as
	// CF-Connecting-IP. It is only honoured for requests from TrustedProxies.
	ProxyHeader    string   `yaml:"proxy_header"`
	TrustedProxies []string `yaml:"trusted_proxies"`
}

type TurnstileConfig struct {
	SiteKey   string        `yaml:"site_key"`
	SecretKey string        `yaml:"secret_key"`
	VerifyURL string        `yaml:"verify_url"`
	Timeout   time.Duration `yaml:"timeout"`
}

type ResendConfig struct {
	APIKey     string        `yaml:"api_key"`
	BaseURL    string        `yaml:"base_url"`
	AudienceID string        `yaml:"audience_id"`
	Timeout    time.Duration `yaml:"timeout"`
}

type SMTPConfig struct {
	SMTPAddr string `yaml:"smtp_addr"`
	SMTPPort int    `yaml:"smtp_port"`
	SMTPMail string `yaml:"smtp_mail"`
	SMTPPass string `yaml:"smtp_pass"`
}

// MailConfig selects the outbound transport. Transport is "resend" or "smtp".
type MailConfig struct {
	Transport   string   `yaml:"transport"`
	FromAddress string   `yaml:"from_address"`
	To          []string `yaml:"to"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MongoDBConfig struct {
	URL         string `yaml:"url"`
	DB          string `yaml:"db"`
	Submissions string `yaml:"submissions"`
}

type FormsConfig struct {
	SubmitLimit  int           `yaml:"submit_limit"`
	SubmitWindow time.Duration `yaml:"submit_window"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

type ContentConfig struct {
	Dir      string        `yaml:"dir"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	Watch    bool          `yaml:"watch"`
}

type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Turnstile TurnstileConfig `yaml:"turnstile"`
	Resend    ResendConfig    `yaml:"resend"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Mail      MailConfig      `yaml:"mail"`
	Redis     RedisConfig     `yaml:"redis"`
	MongoDB   MongoDBConfig   `yaml:"mongodb"`
	Forms     FormsConfig     `yaml:"forms"`
	Content   ContentConfig   `yaml:"content"`
}

var Cfg Config

func Default() Config {
	return Config{
		Backend: BackendConfig{
			Host:     "0.0.0.0",
			Port:     8080,
			LogLevel: "INFO",
		},
		Turnstile: TurnstileConfig{
			VerifyURL: "https://challenges.cloudflare.com/turnstile/v0/siteverify",
			Timeout:   5 * time.Second,
		},
		Resend: ResendConfig{
			BaseURL: "https://api.resend.com",
			Timeout: 10 * time.Second,
		},
		Mail: MailConfig{
			Transport:   "resend",
			FromAddress: "www@re.hallin.media",
			To:          []string{"william@hallin.media"},
		},
		Forms: FormsConfig{
			SubmitLimit:  5,
			SubmitWindow: 10 * time.Minute,
			TokenTTL:     5 * time.Minute,
		},
		Content: ContentConfig{
			Dir:      "content",
			CacheTTL: 10 * time.Minute,
		},
	}
}

// Load reads path on top of Default and stores the result in Cfg.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	Cfg = cfg
	return cfg, nil
}

func (c Config) Validate() error {
	var err error
	if c.Turnstile.SecretKey == "" {
		err = multierr.Append(err, fmt.Errorf("turnstile.secret_key is required"))
	}
	switch c.Mail.Transport {
	case "resend":
		if c.Resend.APIKey == "" {
			err = multierr.Append(err, fmt.Errorf("resend.api_key is required for the resend transport"))
		}
	case "smtp":
		if c.SMTP.SMTPAddr == "" {
			err = multierr.Append(err, fmt.Errorf("smtp.smtp_addr is required for the smtp transport"))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("unknown mail transport: %q", c.Mail.Transport))
	}
	if len(c.Mail.To) == 0 {
		err = multierr.Append(err, fmt.Errorf("mail.to must list at least one recipient"))
	}
	if c.Backend.ProxyHeader != "" && len(c.Backend.TrustedProxies) == 0 {
		err = multierr.Append(err, fmt.Errorf("backend.trusted_proxies is required when backend.proxy_header is set"))
	}
	if c.Forms.SubmitLimit > 0 && c.Forms.SubmitWindow <= 0 {
		err = multierr.Append(err, fmt.Errorf("forms.submit_window must be positive when submit_limit is set"))
	}
	return err
}
