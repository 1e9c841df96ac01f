package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

type MockSubscriberRepository struct {
	subscribers map[string]*models.Subscriber
	nextID      int64
	err         error
}

func NewMockSubscriberRepository() *MockSubscriberRepository {
	return &MockSubscriberRepository{
		subscribers: make(map[string]*models.Subscriber),
		nextID:      1,
	}
}

func (m *MockSubscriberRepository) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.subscribers[email]
	if !ok {
		return nil, utils.NewNotFoundError("Subscriber", email)
	}
	return s, nil
}

func (m *MockSubscriberRepository) Create(ctx context.Context, email, verificationToken string) (*models.Subscriber, error) {
	if _, ok := m.subscribers[email]; ok {
		return nil, utils.NewDuplicateError("Subscriber", "email", email)
	}
	token := verificationToken
	s := &models.Subscriber{
		ID:                m.nextID,
		Email:             email,
		Subscribed:        true,
		VerificationToken: &token,
		SubscribedAt:      time.Now(),
	}
	m.nextID++
	m.subscribers[email] = s
	return s, nil
}

func (m *MockSubscriberRepository) Resubscribe(ctx context.Context, email string) error {
	if s, ok := m.subscribers[email]; ok {
		s.Subscribed = true
		s.UnsubscribedAt = nil
	}
	return nil
}

func (m *MockSubscriberRepository) Unsubscribe(ctx context.Context, email string) error {
	if m.err != nil {
		return m.err
	}
	if s, ok := m.subscribers[email]; ok {
		now := time.Now()
		s.Subscribed = false
		s.UnsubscribedAt = &now
	}
	return nil
}

func (m *MockSubscriberRepository) Verify(ctx context.Context, token string) (*models.Subscriber, error) {
	for _, s := range m.subscribers {
		if s.VerificationToken != nil && *s.VerificationToken == token {
			s.Verified = true
			s.VerificationToken = nil
			return s, nil
		}
	}
	return nil, utils.NewResourceNotFoundError(constants.MsgInvalidVerifyLink)
}

func setupNewsletterService() (*NewsletterService, *MockSubscriberRepository, *mockNotifier) {
	repo := NewMockSubscriberRepository()
	notifier := newMockNotifier()
	svc := NewNewsletterService(repo, notifier, "http://localhost:5173/")
	svc.newToken = func(n int) (string, error) { return "tok123", nil }
	return svc, repo, notifier
}

func TestNewsletterService_Subscribe(t *testing.T) {
	t.Run("New subscriber", func(t *testing.T) {
		svc, repo, notifier := setupNewsletterService()

		result, created, err := svc.Subscribe(context.Background(), "reader@example.com")

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, constants.MsgSubscribed, result.Message)
		assert.False(t, result.AlreadySubscribed)
		assert.Equal(t, "tok123", *repo.subscribers["reader@example.com"].VerificationToken)
		assert.Equal(t, "http://localhost:5173/verify-subscription/tok123", notifier.welcomes["reader@example.com"])
	})

	t.Run("Already subscribed", func(t *testing.T) {
		svc, _, notifier := setupNewsletterService()
		_, _, err := svc.Subscribe(context.Background(), "reader@example.com")
		require.NoError(t, err)
		delete(notifier.welcomes, "reader@example.com")

		result, created, err := svc.Subscribe(context.Background(), "reader@example.com")

		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, result.AlreadySubscribed)
		assert.Equal(t, constants.MsgAlreadySubscribed, result.Message)
		assert.NotContains(t, notifier.welcomes, "reader@example.com")
	})

	t.Run("Resubscribe", func(t *testing.T) {
		svc, repo, notifier := setupNewsletterService()
		_, _, _ = svc.Subscribe(context.Background(), "reader@example.com")
		require.NoError(t, svc.Unsubscribe(context.Background(), "reader@example.com"))

		result, created, err := svc.Subscribe(context.Background(), "reader@example.com")

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, constants.MsgResubscribed, result.Message)
		assert.True(t, repo.subscribers["reader@example.com"].Subscribed)
		assert.Equal(t, "", notifier.welcomes["reader@example.com"])
	})

	t.Run("Invalid email", func(t *testing.T) {
		svc, repo, _ := setupNewsletterService()

		for _, email := range []string{"", "   ", "not-an-email"} {
			_, _, err := svc.Subscribe(context.Background(), email)
			require.Error(t, err)
			assert.Equal(t, 400, utils.StatusCode(err))
			assert.Equal(t, constants.MsgInvalidSubscriberEmail, err.Error())
		}
		assert.Empty(t, repo.subscribers)
	})

	t.Run("Welcome email failure is swallowed", func(t *testing.T) {
		svc, _, notifier := setupNewsletterService()
		notifier.err = errors.New("smtp down")

		_, created, err := svc.Subscribe(context.Background(), "reader@example.com")

		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("Storage failure", func(t *testing.T) {
		svc, repo, _ := setupNewsletterService()
		repo.err = errors.New("connection refused")

		_, _, err := svc.Subscribe(context.Background(), "reader@example.com")

		require.Error(t, err)
		assert.Equal(t, 500, utils.StatusCode(err))
		assert.Equal(t, constants.MsgSubscribeFailed, err.Error())
	})
}

func TestNewsletterService_Unsubscribe(t *testing.T) {
	svc, repo, _ := setupNewsletterService()

	assert.NoError(t, svc.Unsubscribe(context.Background(), "unknown@example.com"))

	repo.err = errors.New("connection refused")
	err := svc.Unsubscribe(context.Background(), "unknown@example.com")
	require.Error(t, err)
	assert.Equal(t, constants.MsgUnsubscribeFailed, err.Error())
}

func TestNewsletterService_Verify(t *testing.T) {
	svc, repo, _ := setupNewsletterService()
	_, _, err := svc.Subscribe(context.Background(), "reader@example.com")
	require.NoError(t, err)

	require.NoError(t, svc.Verify(context.Background(), "tok123"))
	assert.True(t, repo.subscribers["reader@example.com"].Verified)

	err = svc.Verify(context.Background(), "tok123")
	require.Error(t, err)
	assert.Equal(t, 400, utils.StatusCode(err))
	assert.Equal(t, constants.MsgInvalidVerifyLink, err.Error())

	err = svc.Verify(context.Background(), "")
	assert.Equal(t, constants.MsgInvalidVerifyLink, err.Error())
}
