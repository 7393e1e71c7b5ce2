// Package auth implements registration, login and the OTP login flow.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"smartshop/internal/models"
	"smartshop/internal/repositories"
	"smartshop/internal/services/sms"
	"smartshop/internal/session"
	"smartshop/internal/validation"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	// OTPResendInterval is the minimum gap between OTP requests for the
	// same session.
	OTPResendInterval = 60 * time.Second
	// OTPLifetime is how long an issued code stays verifiable.
	OTPLifetime = 5 * time.Minute
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrOTPRateLimited     = errors.New("please wait 60 seconds before requesting another OTP")
	ErrOTPMismatch        = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP has expired")
	ErrDeliveryFailed     = errors.New("failed to send OTP")
)

// ValidationError reports malformed or missing registration input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type Service interface {
	Register(input models.RegisterInput) (*models.User, error)
	Login(email, password string) (*models.User, error)
	SendOTP(ctx context.Context, sess *session.Data, phone string) error
	VerifyOTP(sess *session.Data, code string) error
}

type service struct {
	userRepo repositories.UserRepository
	sender   sms.Sender
	log      *logrus.Logger
}

func NewService(userRepo repositories.UserRepository, sender sms.Sender, log *logrus.Logger) Service {
	return &service{
		userRepo: userRepo,
		sender:   sender,
		log:      log,
	}
}

// Register stores a new user with a salted password hash and creates their
// zero-balance wallet. Both rows are written in one database transaction.
func (s *service) Register(input models.RegisterInput) (*models.User, error) {
	v := validation.New()
	v.Required("fullname", input.Name)
	v.Required("email", input.Email)
	v.Required("password", input.Password)
	if !v.Valid() {
		return nil, &ValidationError{Message: "All fields are required!"}
	}
	v.Email("email", input.Email)
	if !v.Valid() {
		return nil, &ValidationError{Message: v.FirstError()}
	}

	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: string(hashed),
	}
	if err := s.userRepo.CreateWithWallet(user); err != nil {
		// The unique index catches the race between the pre-check and
		// the insert.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("user registered")

	return user, nil
}

// Login verifies the password hash and returns the user on success.
func (s *service) Login(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.WithField("user_id", user.ID).Warn("login failed: incorrect password")
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SendOTP issues a 6-digit code, stores it with the phone number in the
// session and hands it to the SMS collaborator. Requests inside the resend
// interval are rejected. Delivery failures keep the code in the session so
// the operational log path still works.
func (s *service) SendOTP(ctx context.Context, sess *session.Data, phone string) error {
	if !sess.LastOTPTime.IsZero() && time.Since(sess.LastOTPTime) < OTPResendInterval {
		return ErrOTPRateLimited
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	now := time.Now()
	sess.OTP = code
	sess.OTPPhone = phone
	sess.OTPIssuedAt = now
	sess.LastOTPTime = now

	body := fmt.Sprintf("Your OTP for Smart Shopping System is %s", code)
	if err := s.sender.Send(ctx, phone, body); err != nil {
		s.log.WithError(err).WithField("phone", phone).Error("SMS delivery failed")
		return ErrDeliveryFailed
	}

	return nil
}

// VerifyOTP compares the submitted code against the session. A match clears
// the OTP state; a mismatch keeps it until expiry or a fresh request
// overwrites it.
func (s *service) VerifyOTP(sess *session.Data, code string) error {
	if sess.OTP == "" {
		return ErrOTPMismatch
	}
	if time.Since(sess.OTPIssuedAt) > OTPLifetime {
		sess.ClearOTP()
		return ErrOTPExpired
	}
	if code != sess.OTP {
		return ErrOTPMismatch
	}
	sess.ClearOTP()
	return nil
}

// generateOTP returns a random 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
