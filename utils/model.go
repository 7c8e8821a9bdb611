package utils

import "fmt"

const (
	TurnstileField   = "cf-turnstile-response"
	ValidationPrefix = "Failed to validate: "
)

// ActionError is the structured failure half of a remote submit response.
type ActionError struct {
	Message string          `json:"message,omitempty"`
	Code    ActionErrorCode `json:"code,omitempty"`
}

func (e *ActionError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ActionResult is what a remote submit operation answers: Data on success,
// Error otherwise.
type ActionResult struct {
	Data  any          `json:"data,omitempty"`
	Error *ActionError `json:"error,omitempty"`
}

// FieldIssue is one entry of the JSON list that follows ValidationPrefix.
type FieldIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}
