package actions

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"hallin-site/utils"
	harukiAPIHelper "hallin-site/utils/api"
	"hallin-site/utils/mailer"
)

const (
	msgTokenRequired = "Please complete the verification"
	msgInvalidEmail  = "Please enter a valid email address"
)

// submission is one parsed action payload.
type submission interface {
	validate() []utils.FieldIssue
	token() string
	fields() map[string]string
	perform(ctx context.Context, helper *harukiAPIHelper.HallinRouterHelpers) error
}

type issueList []utils.FieldIssue

func (l *issueList) minLen(field, value string, n int, message string) {
	if utf8.RuneCountInString(value) < n {
		*l = append(*l, utils.FieldIssue{Field: field, Message: message})
	}
}

func (l *issueList) email(field, value string) {
	if !validEmail(value) {
		*l = append(*l, utils.FieldIssue{Field: field, Message: msgInvalidEmail})
	}
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	domain := s[strings.LastIndexByte(s, '@')+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

func sendMail(ctx context.Context, helper *harukiAPIHelper.HallinRouterHelpers, build func() (mailer.Mail, error)) error {
	if helper.Mailer == nil {
		return fmt.Errorf("no mail transport configured")
	}
	m, err := build()
	if err != nil {
		return err
	}
	return helper.Mailer.SendMail(ctx, m)
}

type contactForm struct {
	Name           string `form:"name"`
	Email          string `form:"email"`
	Message        string `form:"message"`
	TurnstileToken string `form:"cf-turnstile-response"`
}

func (f *contactForm) validate() []utils.FieldIssue {
	var l issueList
	l.minLen("name", f.Name, 1, "Name is required")
	l.email("email", f.Email)
	l.minLen("message", f.Message, 100, "Message must be at least 100 characters long")
	l.minLen(utils.TurnstileField, f.TurnstileToken, 1, msgTokenRequired)
	return l
}

func (f *contactForm) token() string { return f.TurnstileToken }

func (f *contactForm) fields() map[string]string {
	return map[string]string{"name": f.Name, "email": f.Email, "message": f.Message}
}

func (f *contactForm) perform(ctx context.Context, helper *harukiAPIHelper.HallinRouterHelpers) error {
	return sendMail(ctx, helper, mailer.ContactMessage{Name: f.Name, Email: f.Email, Message: f.Message}.Mail)
}

type newsletterForm struct {
	FirstName      string `form:"firstName"`
	Email          string `form:"email"`
	TurnstileToken string `form:"cf-turnstile-response"`
}

func (f *newsletterForm) validate() []utils.FieldIssue {
	var l issueList
	l.minLen("firstName", f.FirstName, 1, "First name is required")
	l.email("email", f.Email)
	l.minLen(utils.TurnstileField, f.TurnstileToken, 1, msgTokenRequired)
	return l
}

func (f *newsletterForm) token() string { return f.TurnstileToken }

func (f *newsletterForm) fields() map[string]string {
	return map[string]string{"firstName": f.FirstName, "email": f.Email}
}

func (f *newsletterForm) perform(ctx context.Context, helper *harukiAPIHelper.HallinRouterHelpers) error {
	if helper.Audience == nil {
		return fmt.Errorf("no newsletter audience configured")
	}
	return helper.Audience.Subscribe(ctx, f.Email, f.FirstName)
}

type licensingForm struct {
	Name                   string `form:"name"`
	Email                  string `form:"email"`
	Company                string `form:"company"`
	Phone                  string `form:"phone"`
	LicenseType            string `form:"license_type"`
	UsageType              string `form:"usage_type"`
	BudgetRange            string `form:"budget_range"`
	UsageScope             string `form:"usage_scope"`
	SpecificAssets         string `form:"specific_assets"`
	ProjectDescription     string `form:"project_description"`
	AdditionalRequirements string `form:"additional_requirements"`
	NeededBy               string `form:"needed_by"`
	Duration               string `form:"duration"`
	TurnstileToken         string `form:"cf-turnstile-response"`
}

func (f *licensingForm) validate() []utils.FieldIssue {
	var l issueList
	l.minLen("name", f.Name, 1, "Name is required")
	l.email("email", f.Email)
	l.minLen("company", f.Company, 1, "Company is required")
	l.minLen("license_type", f.LicenseType, 1, "License type is required")
	l.minLen("usage_type", f.UsageType, 1, "Usage type is required")
	l.minLen("budget_range", f.BudgetRange, 1, "Budget range is required")
	l.minLen("usage_scope", f.UsageScope, 1, "Usage scope is required")
	l.minLen("specific_assets", f.SpecificAssets, 10, "Please provide details about the specific assets")
	l.minLen("project_description", f.ProjectDescription, 50, "Project description must be at least 50 characters long")
	l.minLen("needed_by", f.NeededBy, 1, "Timeline is required")
	l.minLen("duration", f.Duration, 1, "License duration is required")
	l.minLen(utils.TurnstileField, f.TurnstileToken, 1, msgTokenRequired)
	return l
}

func (f *licensingForm) token() string { return f.TurnstileToken }

func (f *licensingForm) fields() map[string]string {
	return map[string]string{
		"name":                    f.Name,
		"email":                   f.Email,
		"company":                 f.Company,
		"phone":                   f.Phone,
		"license_type":            f.LicenseType,
		"usage_type":              f.UsageType,
		"budget_range":            f.BudgetRange,
		"usage_scope":             f.UsageScope,
		"specific_assets":         f.SpecificAssets,
		"project_description":     f.ProjectDescription,
		"additional_requirements": f.AdditionalRequirements,
		"needed_by":               f.NeededBy,
		"duration":                f.Duration,
	}
}

func (f *licensingForm) perform(ctx context.Context, helper *harukiAPIHelper.HallinRouterHelpers) error {
	return sendMail(ctx, helper, mailer.LicensingRequest{
		Name:                   f.Name,
		Email:                  f.Email,
		Company:                f.Company,
		Phone:                  f.Phone,
		LicenseType:            f.LicenseType,
		UsageType:              f.UsageType,
		BudgetRange:            f.BudgetRange,
		UsageScope:             f.UsageScope,
		SpecificAssets:         f.SpecificAssets,
		ProjectDescription:     f.ProjectDescription,
		AdditionalRequirements: f.AdditionalRequirements,
		NeededBy:               f.NeededBy,
		Duration:               f.Duration,
	}.Mail)
}

type projectInquiryForm struct {
	Name               string `form:"name"`
	Email              string `form:"email"`
	Company            string `form:"company"`
	Phone              string `form:"phone"`
	ServiceType        string `form:"service_type"`
	ProjectScale       string `form:"project_scale"`
	Budget             string `form:"budget"`
	Timeline           string `form:"timeline"`
	ProjectDescription string `form:"project_description"`
	AdditionalInfo     string `form:"additional_info"`
	ReferralSource     string `form:"referral_source"`
	NewsletterSignup   string `form:"newsletter_signup"`
	TurnstileToken     string `form:"cf-turnstile-response"`
}

func (f *projectInquiryForm) validate() []utils.FieldIssue {
	var l issueList
	l.minLen("name", f.Name, 1, "Name is required")
	l.email("email", f.Email)
	l.minLen("service_type", f.ServiceType, 1, "Primary service is required")
	l.minLen("budget", f.Budget, 1, "Budget range is required")
	l.minLen("timeline", f.Timeline, 1, "Timeline is required")
	l.minLen("project_description", f.ProjectDescription, 50, "Project description must be at least 50 characters long")
	l.minLen(utils.TurnstileField, f.TurnstileToken, 1, msgTokenRequired)
	return l
}

func (f *projectInquiryForm) token() string { return f.TurnstileToken }

func (f *projectInquiryForm) fields() map[string]string {
	return map[string]string{
		"name":                f.Name,
		"email":               f.Email,
		"company":             f.Company,
		"phone":               f.Phone,
		"service_type":        f.ServiceType,
		"project_scale":       f.ProjectScale,
		"budget":              f.Budget,
		"timeline":            f.Timeline,
		"project_description": f.ProjectDescription,
		"additional_info":     f.AdditionalInfo,
		"referral_source":     f.ReferralSource,
		"newsletter_signup":   f.NewsletterSignup,
	}
}

func (f *projectInquiryForm) perform(ctx context.Context, helper *harukiAPIHelper.HallinRouterHelpers) error {
	err := sendMail(ctx, helper, mailer.ProjectInquiry{
		Name:               f.Name,
		Email:              f.Email,
		Company:            f.Company,
		Phone:              f.Phone,
		ServiceType:        f.ServiceType,
		ProjectScale:       f.ProjectScale,
		Budget:             f.Budget,
		Timeline:           f.Timeline,
		ProjectDescription: f.ProjectDescription,
		AdditionalInfo:     f.AdditionalInfo,
		ReferralSource:     f.ReferralSource,
	}.Mail)
	if err != nil {
		return err
	}
	// The inquiry has already been delivered; a failed signup only gets logged.
	if utils.IsChecked(f.NewsletterSignup) && helper.Audience != nil {
		if subErr := helper.Audience.Subscribe(ctx, f.Email, f.Name); subErr != nil {
			helper.Logger.Warnf("newsletter signup from project inquiry failed: %v", subErr)
		}
	}
	return nil
}
