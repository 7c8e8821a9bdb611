package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

type LicensingRequest struct {
	Name                   string
	Email                  string
	Company                string
	Phone                  string
	LicenseType            string
	UsageType              string
	BudgetRange            string
	UsageScope             string
	SpecificAssets         string
	ProjectDescription     string
	AdditionalRequirements string
	NeededBy               string
	Duration               string
}

type ProjectInquiry struct {
	Name               string
	Email              string
	Company            string
	Phone              string
	ServiceType        string
	ProjectScale       string
	Budget             string
	Timeline           string
	ProjectDescription string
	AdditionalInfo     string
	ReferralSource     string
}

func nl2br(s string) template.HTML {
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}

var funcs = template.FuncMap{"nl2br": nl2br}

// subjectPart keeps submitter text used in a subject on a single line.
func subjectPart(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

const contactTemplate = `
    <h2>New Contact Message</h2>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Message:</strong></p>
    <p>{{nl2br .Message}}</p>
`

const licensingTemplate = `
    <h2>New Licensing Request</h2>
    <h3>Contact Information</h3>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Company:</strong> {{.Company}}</p>
    {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}

    <h3>Licensing Details</h3>
    <p><strong>License Type:</strong> {{.LicenseType}}</p>
    <p><strong>Intended Use:</strong> {{.UsageType}}</p>
    <p><strong>Budget Range:</strong> {{.BudgetRange}}</p>
    <p><strong>Usage Scope:</strong> {{.UsageScope}}</p>
    <p><strong>License Duration:</strong> {{.Duration}}</p>
    <p><strong>Needed By:</strong> {{.NeededBy}}</p>

    <h3>Project Details</h3>
    <p><strong>Specific Assets:</strong></p>
    <p>{{nl2br .SpecificAssets}}</p>

    <p><strong>Project Description:</strong></p>
    <p>{{nl2br .ProjectDescription}}</p>

    {{if .AdditionalRequirements}}<p><strong>Additional Requirements:</strong></p><p>{{nl2br .AdditionalRequirements}}</p>{{end}}
`

const projectInquiryTemplate = `
    <h2>New Project Inquiry</h2>
    <h3>Contact Information</h3>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    {{if .Company}}<p><strong>Company:</strong> {{.Company}}</p>{{end}}
    {{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}

    <h3>Project Details</h3>
    <p><strong>Primary Service:</strong> {{.ServiceType}}</p>
    {{if .ProjectScale}}<p><strong>Project Scale:</strong> {{.ProjectScale}}</p>{{end}}
    <p><strong>Budget Range:</strong> {{.Budget}}</p>
    <p><strong>Target Timeline:</strong> {{.Timeline}}</p>

    <h3>Project Description</h3>
    <p>{{nl2br .ProjectDescription}}</p>

    {{if .AdditionalInfo}}<h3>Additional Information</h3><p>{{nl2br .AdditionalInfo}}</p>{{end}}

    <h3>Other Details</h3>
    {{if .ReferralSource}}<p><strong>How they heard about me:</strong> {{.ReferralSource}}</p>{{end}}
`

var (
	contactTmpl        = template.Must(template.New("contact").Funcs(funcs).Parse(contactTemplate))
	licensingTmpl      = template.Must(template.New("licensing").Funcs(funcs).Parse(licensingTemplate))
	projectInquiryTmpl = template.Must(template.New("project").Funcs(funcs).Parse(projectInquiryTemplate))
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func (m ContactMessage) Mail() (Mail, error) {
	html, err := render(contactTmpl, m)
	if err != nil {
		return Mail{}, err
	}
	return Mail{
		DisplayName: "Contact via Website",
		Subject:     "New contact message from " + subjectPart(m.Name),
		HTML:        html,
		ReplyTo:     m.Email,
	}, nil
}

func (r LicensingRequest) Mail() (Mail, error) {
	html, err := render(licensingTmpl, r)
	if err != nil {
		return Mail{}, err
	}
	return Mail{
		DisplayName: "Licensing Request via Website",
		Subject:     fmt.Sprintf("New licensing request from %s (%s)", subjectPart(r.Name), subjectPart(r.Company)),
		HTML:        html,
		ReplyTo:     r.Email,
	}, nil
}

func (p ProjectInquiry) Mail() (Mail, error) {
	html, err := render(projectInquiryTmpl, p)
	if err != nil {
		return Mail{}, err
	}
	subject := "New project inquiry from " + subjectPart(p.Name)
	if company := subjectPart(p.Company); company != "" {
		subject += " (" + company + ")"
	}
	return Mail{
		DisplayName: "Project Inquiry via Website",
		Subject:     subject,
		HTML:        html,
		ReplyTo:     p.Email,
	}, nil
}
