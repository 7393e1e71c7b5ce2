// Package sms delivers text messages through an external provider.
// Delivery is best effort: failures are logged and surfaced as a generic
// error, never fatal to the surrounding request.
package sms

import (
	"context"

	"smartshop/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender delivers a message body to a destination phone number.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioSender sends messages through the Twilio REST API.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (s *TwilioSender) Send(_ context.Context, to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)
	_, err := s.client.Api.CreateMessage(params)
	return err
}

// LogSender is the degraded/dev-mode path used when Twilio is not
// configured. Message bodies go to the operational log only.
type LogSender struct {
	log *logrus.Logger
}

func NewLogSender(log *logrus.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, to, body string) error {
	s.log.WithFields(logrus.Fields{
		"to":   to,
		"body": body,
	}).Info("development mode - SMS not sent")
	return nil
}

// NewFromEnv returns a TwilioSender when the provider is configured and the
// logging fallback otherwise.
func NewFromEnv(log *logrus.Logger) Sender {
	sid := config.GetEnv("TWILIO_ACCOUNT_SID", "")
	token := config.GetEnv("TWILIO_AUTH_TOKEN", "")
	from := config.GetEnv("TWILIO_PHONE", "")
	if sid == "" || token == "" {
		log.Warn("Twilio not configured, falling back to log-only SMS delivery")
		return NewLogSender(log)
	}
	return NewTwilioSender(sid, token, from)
}
