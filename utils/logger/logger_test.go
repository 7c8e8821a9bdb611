package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("Forms", "WARN", &buf)

	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "Forms")
	assert.Contains(t, out, "WARN")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("Forms", "ERROR", &buf)
	l.Debugf("before")
	l.SetLevel("DEBUG")
	l.Debugf("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
}

func TestDefaultLogger_Replaceable(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(NewLogger("Test", "INFO", &buf))
	Errorf("boom: %s", "redis")

	assert.Contains(t, buf.String(), "boom: redis")
}
