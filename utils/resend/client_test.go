package resend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hallin-site/config"
	harukiLogger "hallin-site/utils/logger"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.ResendConfig{APIKey: "re_test", BaseURL: srv.URL}, harukiLogger.NewLogger("Resend", "ERROR", io.Discard))
}

func TestSendEmail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		var got SendEmailRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &got))
		assert.Equal(t, []string{"william@hallin.media"}, got.To)
		assert.Equal(t, "a@b.com", got.ReplyTo)
		_, _ = io.WriteString(w, `{"id":"email_1"}`)
	})

	resp, err := c.SendEmail(context.Background(), SendEmailRequest{
		From:    "Contact via Website <www@re.hallin.media>",
		To:      []string{"william@hallin.media"},
		Subject: "hi",
		HTML:    "<p>hi</p>",
		ReplyTo: "a@b.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "email_1", resp.ID)
}

func TestCreateContact(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audiences/aud-1/contacts", r.URL.Path)
		var got CreateContactRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, sonic.Unmarshal(body, &got))
		assert.Equal(t, "Ada", got.FirstName)
		assert.False(t, got.Unsubscribed)
		_, _ = io.WriteString(w, `{"object":"contact","id":"c_1"}`)
	})

	resp, err := c.CreateContact(context.Background(), "aud-1", CreateContactRequest{Email: "a@b.com", FirstName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "c_1", resp.ID)
}

func TestProviderErrorIsStructured(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`)
	})

	_, err := c.SendEmail(context.Background(), SendEmailRequest{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid from field", apiErr.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
}

func TestUnreadableErrorIsNotStructured(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "oops")
	})

	_, err := c.SendEmail(context.Background(), SendEmailRequest{})
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
