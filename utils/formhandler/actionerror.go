package formhandler

import (
	"strconv"
	"strings"

	"hallin-site/utils"

	"github.com/bytedance/sonic"
)

const (
	fallbackErrorMessage   = "An error occurred"
	fallbackValidationText = "Validation failed"
)

// ExtractErrorMessage turns a structured action error into text for the
// error region. Validation failures carry a JSON issue list after
// utils.ValidationPrefix; the first issue's message is preferred.
func ExtractErrorMessage(err *utils.ActionError) string {
	if err == nil || err.Message == "" {
		return fallbackErrorMessage
	}

	rest, ok := strings.CutPrefix(err.Message, utils.ValidationPrefix)
	if !ok {
		return err.Message
	}

	var decoded any
	if jsonErr := sonic.UnmarshalString(rest, &decoded); jsonErr != nil {
		return err.Message
	}
	issues, ok := decoded.([]any)
	if !ok || len(issues) == 0 {
		return err.Message
	}
	switch first := issues[0].(type) {
	case nil:
		// a null entry has no message to read
		return err.Message
	case map[string]any:
		if msg := issueText(first["message"]); msg != "" {
			return msg
		}
	}
	return fallbackValidationText
}

// issueText renders a truthy message value; empty, zero and false yield "".
func issueText(v any) string {
	switch msg := v.(type) {
	case string:
		return msg
	case float64:
		if msg != 0 {
			return strconv.FormatFloat(msg, 'f', -1, 64)
		}
	case bool:
		if msg {
			return "true"
		}
	}
	return ""
}
