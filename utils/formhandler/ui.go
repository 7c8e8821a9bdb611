package formhandler

const (
	dimmedOpacity     = "0.5"
	needCaptchaTitle  = "Complete the captcha first"
	needCaptchaSubmit = "Complete the captcha before submitting."
	captchaExpiredMsg = "Captcha expired. Complete it again."
	genericSubmitFail = "Failed to send. Try again later."
)

type messageKind int

const (
	messageSuccess messageKind = iota
	messageError
)

type uiManager struct {
	elements Elements
	manager  *TurnstileManager
}

func (u *uiManager) showMessage(kind messageKind, message string) {
	isSuccess := kind == messageSuccess
	u.elements.SuccessMessage.SetVisible(isSuccess)
	u.elements.ErrorMessage.SetVisible(!isSuccess)
	if !isSuccess && message != "" {
		u.elements.ErrorText.SetText(message)
	}
}

func (u *uiManager) hideMessages() {
	u.elements.SuccessMessage.SetVisible(false)
	u.elements.ErrorMessage.SetVisible(false)
}

func (u *uiManager) setButtonState(disabled bool, opacity, title string) {
	u.elements.SubmitBtn.SetDisabled(disabled)
	u.elements.SubmitBtn.SetOpacity(opacity)
	u.elements.SubmitBtn.SetTitle(title)
}

func (u *uiManager) updateSubmitButton() {
	if u.manager.HasValidToken() {
		u.setButtonState(false, "", "")
		return
	}
	u.setButtonState(true, dimmedOpacity, needCaptchaTitle)
}
