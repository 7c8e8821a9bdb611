package formhandler

import (
	"errors"
	"sync"

	harukiLogger "hallin-site/utils/logger"
)

var ErrWidgetUnavailable = errors.New("turnstile API not loaded")

type WidgetOptions struct {
	SiteKey         string
	Size            string
	Callback        func(token string)
	ErrorCallback   func(code string)
	ExpiredCallback func()
}

// Widget is the challenge provider's page API.
type Widget interface {
	Render(container string, opts WidgetOptions) error
	Reset()
}

type Callbacks struct {
	OnSuccess func(token string)
	OnError   func(code string)
	OnExpired func()
}

// TurnstileManager owns one challenge widget and the proof token it yields.
// Rendering happens at most once; the token comes and goes afterwards.
type TurnstileManager struct {
	mu        sync.Mutex
	widget    Widget
	logger    *harukiLogger.Logger
	token     string
	rendered  bool
	rendering bool
}

func NewTurnstileManager(widget Widget, logger *harukiLogger.Logger) *TurnstileManager {
	if logger == nil {
		logger = harukiLogger.Default()
	}
	return &TurnstileManager{widget: widget, logger: logger}
}

func (m *TurnstileManager) Render(container, siteKey string, cb Callbacks) {
	m.mu.Lock()
	if m.rendered || m.rendering {
		m.mu.Unlock()
		return
	}
	if m.widget == nil {
		m.mu.Unlock()
		m.logger.Errorf("%v", ErrWidgetUnavailable)
		return
	}
	m.rendering = true
	m.mu.Unlock()

	// The widget may fire callbacks synchronously, so it runs unlocked.
	err := m.widget.Render(container, WidgetOptions{
		SiteKey: siteKey,
		Size:    "flexible",
		Callback: func(token string) {
			m.setToken(token)
			if cb.OnSuccess != nil {
				cb.OnSuccess(token)
			}
		},
		ErrorCallback: func(code string) {
			m.setToken("")
			if cb.OnError != nil {
				cb.OnError(code)
			}
		},
		ExpiredCallback: func() {
			m.setToken("")
			if cb.OnExpired != nil {
				cb.OnExpired()
			}
		},
	})

	m.mu.Lock()
	m.rendering = false
	if err == nil {
		m.rendered = true
	}
	m.mu.Unlock()
	if err != nil {
		m.logger.Errorf("Turnstile render into %s failed: %v", container, err)
	}
}

func (m *TurnstileManager) setToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *TurnstileManager) Reset() {
	m.mu.Lock()
	m.token = ""
	rendered := m.rendered
	m.mu.Unlock()
	if rendered {
		m.widget.Reset()
	}
}

func (m *TurnstileManager) HasValidToken() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

func (m *TurnstileManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *TurnstileManager) Rendered() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rendered
}
