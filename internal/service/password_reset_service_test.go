package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

type sentResetCode struct {
	email string
	name  string
	code  string
	ttl   time.Duration
}

type mockNotifier struct {
	resetCodes []sentResetCode
	welcomes   map[string]string
	err        error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{welcomes: make(map[string]string)}
}

func (m *mockNotifier) SendPasswordResetCode(ctx context.Context, toEmail, toName, code string, ttl time.Duration) error {
	m.resetCodes = append(m.resetCodes, sentResetCode{email: toEmail, name: toName, code: code, ttl: ttl})
	return m.err
}

func (m *mockNotifier) SendNewsletterWelcome(ctx context.Context, toEmail, verifyURL string) error {
	m.welcomes[toEmail] = verifyURL
	return m.err
}

var resetNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type resetFixture struct {
	svc         *PasswordResetService
	userRepo    *MockUserRepository
	notifier    *mockNotifier
	invalidator *mockInvalidator
	user        *models.User
}

func setupPasswordResetService(codes ...string) *resetFixture {
	userRepo := NewMockUserRepository()
	user := userRepo.add("Alice", "alice@example.com", "hashed:oldpass", models.RoleUser)
	notifier := newMockNotifier()
	invalidator := &mockInvalidator{}

	svc := NewPasswordResetService(userRepo, &mockHasher{}, notifier, invalidator, &config.ResetSettings{})
	svc.now = func() time.Time { return resetNow }

	next := 0
	svc.generateCode = func() (string, error) {
		if next >= len(codes) {
			return "000000", nil
		}
		code := codes[next]
		next++
		return code, nil
	}

	return &resetFixture{svc: svc, userRepo: userRepo, notifier: notifier, invalidator: invalidator, user: user}
}

func TestNewPasswordResetService_DefaultTTL(t *testing.T) {
	svc := NewPasswordResetService(NewMockUserRepository(), &mockHasher{}, newMockNotifier(), nil, &config.ResetSettings{})
	assert.Equal(t, constants.DefaultResetCodeTTL, svc.codeTTL)

	svc = NewPasswordResetService(NewMockUserRepository(), &mockHasher{}, newMockNotifier(), nil, &config.ResetSettings{CodeTTL: 5 * time.Minute})
	assert.Equal(t, 5*time.Minute, svc.codeTTL)
}

func TestPasswordResetService_RequestReset(t *testing.T) {
	t.Run("Known email stores and sends a code", func(t *testing.T) {
		f := setupPasswordResetService("123456")

		err := f.svc.RequestReset(context.Background(), "alice@example.com")

		require.NoError(t, err)
		require.True(t, hasResetChallenge(f.user))
		assert.Equal(t, "123456", *f.user.ResetCode)
		assert.Equal(t, resetNow.Add(constants.DefaultResetCodeTTL), *f.user.ResetCodeExpiry)
		require.Len(t, f.notifier.resetCodes, 1)
		assert.Equal(t, sentResetCode{
			email: "alice@example.com",
			name:  "Alice",
			code:  "123456",
			ttl:   constants.DefaultResetCodeTTL,
		}, f.notifier.resetCodes[0])
	})

	t.Run("Unknown email looks the same", func(t *testing.T) {
		f := setupPasswordResetService("123456")

		err := f.svc.RequestReset(context.Background(), "nobody@example.com")

		assert.NoError(t, err)
		assert.Empty(t, f.notifier.resetCodes)
	})

	t.Run("Empty email", func(t *testing.T) {
		f := setupPasswordResetService()

		assert.NoError(t, f.svc.RequestReset(context.Background(), ""))
		assert.Empty(t, f.notifier.resetCodes)
	})

	t.Run("Second request overwrites the first code", func(t *testing.T) {
		f := setupPasswordResetService("111111", "222222")

		require.NoError(t, f.svc.RequestReset(context.Background(), "alice@example.com"))
		require.NoError(t, f.svc.RequestReset(context.Background(), "alice@example.com"))

		assert.Equal(t, "222222", *f.user.ResetCode)

		err := f.svc.ResetPassword(context.Background(), &models.ResetPasswordRequest{
			Email: "alice@example.com", Code: "111111", NewPassword: "newpass1",
		})
		require.Error(t, err)
		assert.Equal(t, constants.MsgInvalidResetCode, err.Error())
	})

	t.Run("Delivery failure is not reported", func(t *testing.T) {
		f := setupPasswordResetService("123456")
		f.notifier.err = errors.New("sendgrid down")

		assert.NoError(t, f.svc.RequestReset(context.Background(), "alice@example.com"))
		assert.True(t, hasResetChallenge(f.user))
	})

	t.Run("Storage failure", func(t *testing.T) {
		f := setupPasswordResetService("123456")
		f.userRepo.err = errors.New("connection reset")

		err := f.svc.RequestReset(context.Background(), "alice@example.com")

		require.Error(t, err)
		assert.Equal(t, 500, utils.StatusCode(err))
		assert.Equal(t, constants.MsgGenericFailure, err.Error())
	})
}

func TestPasswordResetService_ResetPassword(t *testing.T) {
	request := func(code, password string) *models.ResetPasswordRequest {
		return &models.ResetPasswordRequest{Email: "alice@example.com", Code: code, NewPassword: password}
	}

	t.Run("Success", func(t *testing.T) {
		f := setupPasswordResetService("123456")
		require.NoError(t, f.svc.RequestReset(context.Background(), "alice@example.com"))
		versionBefore := f.user.CredentialsVersion

		err := f.svc.ResetPassword(context.Background(), request("123456", "newpass1"))

		require.NoError(t, err)
		assert.Equal(t, "hashed:newpass1", f.user.PasswordHash)
		assert.False(t, hasResetChallenge(f.user))
		assert.Equal(t, versionBefore+1, f.user.CredentialsVersion)
		assert.Equal(t, []int64{f.user.ID}, f.invalidator.invalidated)
	})

	t.Run("Code is single use", func(t *testing.T) {
		f := setupPasswordResetService("123456")
		require.NoError(t, f.svc.RequestReset(context.Background(), "alice@example.com"))
		require.NoError(t, f.svc.ResetPassword(context.Background(), request("123456", "newpass1")))

		err := f.svc.ResetPassword(context.Background(), request("123456", "another1"))

		require.Error(t, err)
		assert.Equal(t, 400, utils.StatusCode(err))
		assert.Equal(t, constants.MsgInvalidResetCode, err.Error())
		assert.Equal(t, "hashed:newpass1", f.user.PasswordHash)
	})

	t.Run("Code is accepted at its expiry instant", func(t *testing.T) {
		f := setupPasswordResetService("123456")
		require.NoError(t, f.svc.RequestReset(context.Background(), "alice@example.com"))
		f.svc.now = func() time.Time { return resetNow.Add(constants.DefaultResetCodeTTL) }

		err := f.svc.ResetPassword(context.Background(), request("123456", "newpass1"))

		require.NoError(t, err)
		assert.Equal(t, "hashed:newpass1", f.user.PasswordHash)
		assert.False(t, hasResetChallenge(f.user))
	})

	t.Run("Expired code", func(t *testing.T) {
		f := setupPasswordResetService("123456")
		require.NoError(t, f.svc.RequestReset(context.Background(), "alice@example.com"))
		f.svc.now = func() time.Time { return resetNow.Add(constants.DefaultResetCodeTTL + time.Nanosecond) }

		err := f.svc.ResetPassword(context.Background(), request("123456", "newpass1"))

		require.Error(t, err)
		assert.Equal(t, 400, utils.StatusCode(err))
		assert.Equal(t, constants.MsgExpiredResetCode, err.Error())
		assert.Equal(t, "hashed:oldpass", f.user.PasswordHash)
		assert.True(t, hasResetChallenge(f.user))
	})

	t.Run("Wrong code", func(t *testing.T) {
		f := setupPasswordResetService("123456")
		require.NoError(t, f.svc.RequestReset(context.Background(), "alice@example.com"))

		err := f.svc.ResetPassword(context.Background(), request("654321", "newpass1"))

		require.Error(t, err)
		assert.Equal(t, constants.MsgInvalidResetCode, err.Error())
		assert.Empty(t, f.invalidator.invalidated)
	})

	t.Run("Missing fields", func(t *testing.T) {
		f := setupPasswordResetService()

		for _, req := range []*models.ResetPasswordRequest{
			{Code: "123456", NewPassword: "newpass1"},
			{Email: "alice@example.com", NewPassword: "newpass1"},
			{Email: "alice@example.com", Code: "123456"},
		} {
			err := f.svc.ResetPassword(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, constants.MsgResetFieldsMissing, err.Error())
		}
	})

	t.Run("Short password", func(t *testing.T) {
		f := setupPasswordResetService("123456")
		require.NoError(t, f.svc.RequestReset(context.Background(), "alice@example.com"))

		err := f.svc.ResetPassword(context.Background(), request("123456", "12345"))

		require.Error(t, err)
		assert.Equal(t, 400, utils.StatusCode(err))
		assert.Contains(t, err.Error(), constants.MsgPasswordTooShort)
		assert.True(t, hasResetChallenge(f.user))
	})

	t.Run("Storage failure", func(t *testing.T) {
		f := setupPasswordResetService("123456")
		require.NoError(t, f.svc.RequestReset(context.Background(), "alice@example.com"))
		f.userRepo.err = errors.New("connection reset")

		err := f.svc.ResetPassword(context.Background(), request("123456", "newpass1"))

		require.Error(t, err)
		assert.Equal(t, 500, utils.StatusCode(err))
		assert.Equal(t, constants.MsgGenericFailure, err.Error())
	})
}
