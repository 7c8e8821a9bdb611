package formhandler

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"hallin-site/utils"
	harukiLogger "hallin-site/utils/logger"
)

const DefaultInputSelector = "input, textarea, select"

// SubmitFunc is the remote submit operation behind a form.
type SubmitFunc func(ctx context.Context, payload url.Values) (*utils.ActionResult, error)

type Elements struct {
	Form               Form
	SubmitBtn          Button
	SuccessMessage     Element
	ErrorMessage       Element
	ErrorText          TextSink
	TurnstileContainer string
}

type Config struct {
	Elements      Elements
	Action        SubmitFunc
	InputSelector string
	SiteKey       string
	Widget        Widget
	Logger        *harukiLogger.Logger
	// Context bounds every submission; Teardown cancels it.
	Context context.Context
	// SubmitTimeout caps a single remote call. Zero leaves it unbounded.
	SubmitTimeout time.Duration
}

// Controller binds one form: lazy challenge rendering, submit button state,
// submission and status messages.
type Controller struct {
	elements      Elements
	action        SubmitFunc
	siteKey       string
	submitTimeout time.Duration
	logger        *harukiLogger.Logger

	manager *TurnstileManager
	ui      *uiManager

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	inFlight bool
	removers []func()
	torn     bool
}

func InitializeForm(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = harukiLogger.Default()
	}
	selector := cfg.InputSelector
	if selector == "" {
		selector = DefaultInputSelector
	}
	base := cfg.Context
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithCancel(base)

	manager := NewTurnstileManager(cfg.Widget, logger)
	c := &Controller{
		elements:      cfg.Elements,
		action:        cfg.Action,
		siteKey:       cfg.SiteKey,
		submitTimeout: cfg.SubmitTimeout,
		logger:        logger,
		manager:       manager,
		ui:            &uiManager{elements: cfg.Elements, manager: manager},
		ctx:           ctx,
		cancel:        cancel,
	}

	c.removers = append(c.removers, cfg.Elements.Form.AddEventListener("submit", c.handleSubmit))
	for _, input := range cfg.Elements.Form.Inputs(selector) {
		c.removers = append(c.removers, input.AddEventListener("input", c.onFirstInput))
		if input.Tag() == "SELECT" {
			c.removers = append(c.removers, input.AddEventListener("change", c.onFirstInput))
		}
	}

	c.ui.updateSubmitButton()
	return c
}

// Manager exposes the verification state, mainly for hosts that display it.
func (c *Controller) Manager() *TurnstileManager { return c.manager }

func (c *Controller) onFirstInput(Event) {
	c.ui.hideMessages()
	if c.manager.Rendered() {
		return
	}
	c.manager.Render(c.elements.TurnstileContainer, c.siteKey, Callbacks{
		OnSuccess: func(string) {
			c.ui.updateSubmitButton()
		},
		OnError: func(code string) {
			c.ui.updateSubmitButton()
			c.ui.showMessage(messageError, fmt.Sprintf("Captcha failed. Try again. (%s)", code))
		},
		OnExpired: func() {
			c.ui.updateSubmitButton()
			c.ui.showMessage(messageError, captchaExpiredMsg)
		},
	})
}

func (c *Controller) handleSubmit(ev Event) {
	if ev != nil {
		ev.PreventDefault()
	}

	c.mu.Lock()
	if c.torn || c.inFlight {
		c.mu.Unlock()
		return
	}
	if !c.manager.HasValidToken() {
		c.mu.Unlock()
		c.ui.showMessage(messageError, needCaptchaSubmit)
		return
	}
	c.inFlight = true
	c.mu.Unlock()

	c.ui.hideMessages()
	c.ui.setButtonState(true, dimmedOpacity, "")

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
		c.ui.setButtonState(false, "", "")
		// A reset token keeps the button locked until the next challenge.
		c.ui.updateSubmitButton()
	}()

	payload := c.elements.Form.Values()
	if payload == nil {
		payload = url.Values{}
	}
	payload.Set(utils.TurnstileField, c.manager.Token())

	if err := c.submit(payload); err != nil {
		c.ui.showMessage(messageError, err.Error())
		c.manager.Reset()
		return
	}

	c.ui.showMessage(messageSuccess, "")
	c.elements.Form.Reset()
	c.manager.Reset()
}

// submit runs the remote call and normalises every failure into an error
// whose text is fit for the error region.
func (c *Controller) submit(payload url.Values) error {
	ctx := c.ctx
	if c.submitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.submitTimeout)
		defer cancel()
	}

	result, err := c.action(ctx, payload)
	if err != nil {
		var actionErr *utils.ActionError
		if errors.As(err, &actionErr) {
			return errors.New(ExtractErrorMessage(actionErr))
		}
		c.logger.Errorf("Form submission failed: %v", err)
		return errors.New(genericSubmitFail)
	}
	if result != nil && result.Error != nil {
		return errors.New(ExtractErrorMessage(result.Error))
	}
	return nil
}

// Teardown detaches every listener registered by InitializeForm, cancels
// outstanding submissions and clears the token. Calling it again is a no-op.
func (c *Controller) Teardown() {
	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return
	}
	c.torn = true
	removers := c.removers
	c.removers = nil
	c.mu.Unlock()

	for _, remove := range removers {
		remove()
	}
	c.cancel()
	c.manager.Reset()
}
