package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"hallin-site/utils/content"
	harukiMongo "hallin-site/utils/database/mongo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintStats(t *testing.T) {
	posts := []content.Post{
		{Title: "Shooting in fog", Author: []string{"william"}, PublishedDate: time.Now().Add(-48 * time.Hour), Body: strings.Repeat("word ", 1200)},
		{Title: "Unreleased", Author: []string{"william"}, Draft: true, Body: "draft"},
	}
	authors := []content.Author{{ID: "william", Name: "William Hallin"}}

	var buf bytes.Buffer
	require.NoError(t, printStats(&buf, posts, authors))
	out := buf.String()

	assert.Contains(t, out, "William Hallin")
	assert.Contains(t, out, "2k")
	assert.Contains(t, out, "Shooting in fog")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "2 days ago")
	assert.NotContains(t, out, "Unreleased")
}

func TestPrintStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStats(&buf, nil, nil))
	assert.Contains(t, buf.String(), "No posts yet")
}

func TestPrintSubmissions(t *testing.T) {
	var buf bytes.Buffer
	printSubmissions(&buf, []harukiMongo.Submission{{
		Action:    "sendContactMessage",
		ClientIP:  "203.0.113.7",
		Fields:    map[string]string{"name": "Ada", "email": "ada@example.com", "phone": ""},
		CreatedAt: time.Now().Add(-3 * time.Hour),
	}})
	out := buf.String()
	assert.Contains(t, out, "sendContactMessage")
	assert.Contains(t, out, "email, name")
	assert.Contains(t, out, "3 hours ago")
	assert.NotContains(t, out, "phone")
}
