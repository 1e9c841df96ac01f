package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
)

// sendGridStub records the last request made to the mail send endpoint.
type sendGridStub struct {
	status int
	path   string
	auth   string
	body   map[string]interface{}
}

func (s *sendGridStub) serve(w http.ResponseWriter, r *http.Request) {
	s.path = r.URL.Path
	s.auth = r.Header.Get("Authorization")
	raw, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(raw, &s.body)
	w.WriteHeader(s.status)
}

func newTestSender(t *testing.T, status int) (*SendGridSender, *sendGridStub) {
	t.Helper()

	stub := &sendGridStub{status: status}
	server := httptest.NewServer(http.HandlerFunc(stub.serve))
	t.Cleanup(server.Close)

	sender, err := NewSendGridSender(&config.EmailSettings{
		SendGridAPIKey: "test-api-key",
		FromAddress:    "noreply@blogspace.test",
	})
	require.NoError(t, err)
	sender.apiHost = server.URL

	return sender, stub
}

func TestNewSendGridSender(t *testing.T) {
	t.Run("Success with API key set", func(t *testing.T) {
		// Act
		sender, err := NewSendGridSender(&config.EmailSettings{SendGridAPIKey: "key", FromAddress: "a@b.c"})

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "key", sender.apiKey)
		assert.Equal(t, constants.DefaultEmailFromName, sender.fromName)
	})

	t.Run("Error with no API key", func(t *testing.T) {
		sender, err := NewSendGridSender(&config.EmailSettings{})

		assert.Error(t, err)
		assert.Nil(t, sender)
		assert.Contains(t, err.Error(), "SENDGRID_API_KEY not set")
	})
}

func TestNewNotificationSender(t *testing.T) {
	assert.IsType(t, LogSender{}, NewNotificationSender(&config.EmailSettings{}))
	assert.IsType(t, &SendGridSender{}, NewNotificationSender(&config.EmailSettings{SendGridAPIKey: "key"}))
}

func TestSendGridSender_SendPasswordResetCode(t *testing.T) {
	sender, stub := newTestSender(t, http.StatusAccepted)

	err := sender.SendPasswordResetCode(context.Background(), "alice@example.com", "Alice", "123456", 15*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, sendGridMailPath, stub.path)
	assert.Equal(t, "Bearer test-api-key", stub.auth)
	assert.Equal(t, "Password Reset Code", stub.body["subject"])

	raw, _ := json.Marshal(stub.body)
	assert.Contains(t, string(raw), "123456")
	assert.Contains(t, string(raw), "15 minutes")
	assert.Contains(t, string(raw), "alice@example.com")
}

func TestSendGridSender_SendNewsletterWelcome(t *testing.T) {
	sender, stub := newTestSender(t, http.StatusAccepted)

	err := sender.SendNewsletterWelcome(context.Background(), "reader@example.com", "http://localhost:5173/verify-subscription/abc")

	require.NoError(t, err)
	raw, _ := json.Marshal(stub.body)
	assert.Contains(t, string(raw), "verify-subscription/abc")
}

func TestSendGridSender_RejectedStatus(t *testing.T) {
	sender, _ := newTestSender(t, http.StatusUnauthorized)

	err := sender.SendNewsletterWelcome(context.Background(), "reader@example.com", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestLogSender(t *testing.T) {
	var sender NotificationSender = LogSender{}

	assert.NoError(t, sender.SendPasswordResetCode(context.Background(), "a@b.c", "A", "123456", time.Minute))
	assert.NoError(t, sender.SendNewsletterWelcome(context.Background(), "a@b.c", ""))
}
