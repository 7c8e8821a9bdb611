package formhandler

import (
	"net/url"
	"strings"
	"sync"
)

type fakeEvent struct{ prevented bool }

func (e *fakeEvent) PreventDefault() { e.prevented = true }

type fakeTarget struct {
	mu        sync.Mutex
	next      int
	listeners map[string]map[int]Listener
}

func (t *fakeTarget) AddEventListener(event string, fn Listener) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listeners == nil {
		t.listeners = map[string]map[int]Listener{}
	}
	if t.listeners[event] == nil {
		t.listeners[event] = map[int]Listener{}
	}
	id := t.next
	t.next++
	t.listeners[event][id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners[event], id)
	}
}

func (t *fakeTarget) dispatch(event string) *fakeEvent {
	t.mu.Lock()
	fns := make([]Listener, 0, len(t.listeners[event]))
	for _, fn := range t.listeners[event] {
		fns = append(fns, fn)
	}
	t.mu.Unlock()
	ev := &fakeEvent{}
	for _, fn := range fns {
		fn(ev)
	}
	return ev
}

func (t *fakeTarget) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, l := range t.listeners {
		n += len(l)
	}
	return n
}

type fakeInput struct {
	fakeTarget
	tag string
}

func (i *fakeInput) Tag() string { return i.tag }

type fakeForm struct {
	fakeTarget
	mu     sync.Mutex
	values url.Values
	inputs []*fakeInput
	resets int
}

func (f *fakeForm) Values() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := url.Values{}
	for k, v := range f.values {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (f *fakeForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	for k := range f.values {
		f.values.Set(k, "")
	}
}

func (f *fakeForm) Inputs(selector string) []Input {
	wanted := map[string]bool{}
	for _, s := range strings.Split(selector, ",") {
		wanted[strings.ToUpper(strings.TrimSpace(s))] = true
	}
	var out []Input
	for _, in := range f.inputs {
		if wanted[in.tag] {
			out = append(out, in)
		}
	}
	return out
}

type fakeElement struct {
	mu      sync.Mutex
	visible bool
}

func (e *fakeElement) SetVisible(v bool) {
	e.mu.Lock()
	e.visible = v
	e.mu.Unlock()
}

func (e *fakeElement) isVisible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

type fakeText struct {
	mu   sync.Mutex
	text string
}

func (t *fakeText) SetText(s string) {
	t.mu.Lock()
	t.text = s
	t.mu.Unlock()
}

func (t *fakeText) get() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

type fakeButton struct {
	mu       sync.Mutex
	disabled bool
	opacity  string
	title    string
}

func (b *fakeButton) SetDisabled(d bool) { b.mu.Lock(); b.disabled = d; b.mu.Unlock() }
func (b *fakeButton) SetOpacity(o string) { b.mu.Lock(); b.opacity = o; b.mu.Unlock() }
func (b *fakeButton) SetTitle(t string) { b.mu.Lock(); b.title = t; b.mu.Unlock() }

func (b *fakeButton) state() (bool, string, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled, b.opacity, b.title
}

type fakeWidget struct {
	mu        sync.Mutex
	opts      WidgetOptions
	container string
	renders   int
	resets    int
	err       error
}

func (w *fakeWidget) Render(container string, opts WidgetOptions) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.renders++
	if w.err != nil {
		return w.err
	}
	w.container = container
	w.opts = opts
	return nil
}

func (w *fakeWidget) Reset() {
	w.mu.Lock()
	w.resets++
	w.mu.Unlock()
}

func (w *fakeWidget) options() WidgetOptions {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opts
}

func (w *fakeWidget) solve(token string) { w.options().Callback(token) }
func (w *fakeWidget) fail(code string) { w.options().ErrorCallback(code) }
func (w *fakeWidget) expire() { w.options().ExpiredCallback() }

type page struct {
	form    *fakeForm
	button  *fakeButton
	success *fakeElement
	failure *fakeElement
	text    *fakeText
	widget  *fakeWidget
}

func newPage(fields map[string]string, tags ...string) *page {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	form := &fakeForm{values: values}
	for _, tag := range tags {
		form.inputs = append(form.inputs, &fakeInput{tag: tag})
	}
	return &page{
		form:    form,
		button:  &fakeButton{},
		success: &fakeElement{},
		failure: &fakeElement{},
		text:    &fakeText{},
		widget:  &fakeWidget{},
	}
}

func (p *page) elements() Elements {
	return Elements{
		Form:               p.form,
		SubmitBtn:          p.button,
		SuccessMessage:     p.success,
		ErrorMessage:       p.failure,
		ErrorText:          p.text,
		TurnstileContainer: "#turnstile-container",
	}
}
