package utils

import (
	"fmt"
	"net/http"
)

type ActionName string

const (
	ActionSendContactMessage    ActionName = "sendContactMessage"
	ActionSubscribeToNewsletter ActionName = "subscribeToNewsletter"
	ActionSendLicensingRequest  ActionName = "sendLicensingRequest"
	ActionSendProjectInquiry    ActionName = "sendProjectInquiry"
)

func ParseActionName(s string) (ActionName, error) {
	switch ActionName(s) {
	case ActionSendContactMessage,
		ActionSubscribeToNewsletter,
		ActionSendLicensingRequest,
		ActionSendProjectInquiry:
		return ActionName(s), nil
	default:
		return "", fmt.Errorf("unknown action: %s", s)
	}
}

type ActionErrorCode string

const (
	ActionErrorBadRequest      ActionErrorCode = "BAD_REQUEST"
	ActionErrorTooManyRequests ActionErrorCode = "TOO_MANY_REQUESTS"
	ActionErrorNotFound        ActionErrorCode = "NOT_FOUND"
	ActionErrorInternal        ActionErrorCode = "INTERNAL_SERVER_ERROR"
)

func (c ActionErrorCode) HTTPStatus() int {
	switch c {
	case ActionErrorBadRequest:
		return http.StatusBadRequest
	case ActionErrorTooManyRequests:
		return http.StatusTooManyRequests
	case ActionErrorNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
