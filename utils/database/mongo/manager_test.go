package manager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSubmission(t *testing.T) {
	fields := map[string]string{"email": "a@b.com"}
	a := NewSubmission("subscribeToNewsletter", "1.2.3.4", fields)
	b := NewSubmission("subscribeToNewsletter", "1.2.3.4", fields)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "subscribeToNewsletter", a.Action)
	assert.Equal(t, fields, a.Fields)
	assert.False(t, a.CreatedAt.IsZero())
}
