package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartshop/internal/models"
	"smartshop/internal/repositories"
	"smartshop/internal/session"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	nextID  uint
	wallets int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) CreateWithWallet(user *models.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return repositories.ErrDuplicateEmail
	}
	f.nextID++
	user.ID = f.nextID
	f.byEmail[user.Email] = user
	f.wallets++
	return nil
}

// fakeSender records sends and optionally fails.
type fakeSender struct {
	sent []string
	fail error
}

func (f *fakeSender) Send(_ context.Context, to, body string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, body)
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func validInput() models.RegisterInput {
	return models.RegisterInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+15550001111",
		Password: "hunter22",
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates user with wallet and hashed password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, &fakeSender{}, testLogger())

		user, err := svc.Register(validInput())
		require.NoError(t, err)
		require.NotZero(t, user.ID)
		assert.Equal(t, 1, repo.wallets)

		// The stored password is a hash of the input, not the input.
		assert.NotEqual(t, "hunter22", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, &fakeSender{}, testLogger())

		for _, input := range []models.RegisterInput{
			{Email: "a@b.com", Password: "x"},
			{Name: "Jane", Password: "x"},
			{Name: "Jane", Email: "a@b.com"},
		} {
			_, err := svc.Register(input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "All fields are required!", verr.Message)
		}
		assert.Empty(t, repo.byEmail)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), &fakeSender{}, testLogger())

		input := validInput()
		input.Email = "not-an-email"
		_, err := svc.Register(input)
		assert.True(t, errors.As(err, new(*ValidationError)))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, &fakeSender{}, testLogger())

		_, err := svc.Register(validInput())
		require.NoError(t, err)

		_, err = svc.Register(validInput())
		assert.ErrorIs(t, err, ErrEmailTaken)
		assert.Equal(t, 1, repo.wallets)
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, &fakeSender{}, testLogger())

	registered, err := svc.Register(validInput())
	require.NoError(t, err)

	t.Run("accepts correct password", func(t *testing.T) {
		user, err := svc.Login("jane@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		_, err := svc.Login("jane@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		_, err := svc.Login("nobody@example.com", "hunter22")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSendOTP(t *testing.T) {
	t.Run("stores a six digit code and sends it", func(t *testing.T) {
		sender := &fakeSender{}
		svc := NewService(newFakeUserRepo(), sender, testLogger())

		sess := &session.Data{}
		require.NoError(t, svc.SendOTP(context.Background(), sess, "+15550001111"))

		assert.Len(t, sess.OTP, 6)
		assert.Equal(t, "+15550001111", sess.OTPPhone)
		assert.False(t, sess.OTPIssuedAt.IsZero())
		require.Len(t, sender.sent, 1)
		assert.Contains(t, sender.sent[0], sess.OTP)
	})

	t.Run("enforces the resend interval", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), &fakeSender{}, testLogger())

		sess := &session.Data{LastOTPTime: time.Now()}
		err := svc.SendOTP(context.Background(), sess, "+15550001111")
		assert.ErrorIs(t, err, ErrOTPRateLimited)
	})

	t.Run("allows a resend after the interval", func(t *testing.T) {
		svc := NewService(newFakeUserRepo(), &fakeSender{}, testLogger())

		sess := &session.Data{LastOTPTime: time.Now().Add(-2 * OTPResendInterval)}
		assert.NoError(t, svc.SendOTP(context.Background(), sess, "+15550001111"))
	})

	t.Run("keeps the code on delivery failure", func(t *testing.T) {
		sender := &fakeSender{fail: errors.New("twilio down")}
		svc := NewService(newFakeUserRepo(), sender, testLogger())

		sess := &session.Data{}
		err := svc.SendOTP(context.Background(), sess, "+15550001111")
		assert.ErrorIs(t, err, ErrDeliveryFailed)
		assert.Len(t, sess.OTP, 6)
	})
}

func TestVerifyOTP(t *testing.T) {
	svc := NewService(newFakeUserRepo(), &fakeSender{}, testLogger())

	t.Run("match clears the code", func(t *testing.T) {
		sess := &session.Data{OTP: "123456", OTPIssuedAt: time.Now()}
		require.NoError(t, svc.VerifyOTP(sess, "123456"))
		assert.Empty(t, sess.OTP)
	})

	t.Run("mismatch keeps the code", func(t *testing.T) {
		sess := &session.Data{OTP: "123456", OTPIssuedAt: time.Now()}
		assert.ErrorIs(t, svc.VerifyOTP(sess, "654321"), ErrOTPMismatch)
		assert.Equal(t, "123456", sess.OTP)
	})

	t.Run("no pending code", func(t *testing.T) {
		assert.ErrorIs(t, svc.VerifyOTP(&session.Data{}, "123456"), ErrOTPMismatch)
	})

	t.Run("expired code is cleared", func(t *testing.T) {
		sess := &session.Data{OTP: "123456", OTPIssuedAt: time.Now().Add(-OTPLifetime - time.Minute)}
		assert.ErrorIs(t, svc.VerifyOTP(sess, "123456"), ErrOTPExpired)
		assert.Empty(t, sess.OTP)
	})
}
