package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotDelivered indicates the channel outcomes did not satisfy the
// configured delivery policy.
var ErrNotDelivered = errors.New("otp not delivered")

// EmailSender delivers a single email message. It reports failure without
// guaranteeing delivery.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMSSender delivers a single SMS message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// MessageSender is the outbound contract the auth core consumes: both
// channels, fire-and-report.
type MessageSender interface {
	EmailSender
	SMSSender
}

// Channels combines independent channel implementations into a
// [MessageSender]. A nil channel reports itself unavailable instead of
// panicking, so email-only deployments just leave SMS unset.
type Channels struct {
	Email EmailSender
	SMS   SMSSender
}

var errChannelUnavailable = errors.New("channel not configured")

// SendEmail forwards to the email channel.
func (c Channels) SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if c.Email == nil {
		return errChannelUnavailable
	}
	return c.Email.SendEmail(ctx, to, subject, htmlBody, textBody)
}

// SendSMS forwards to the SMS channel.
func (c Channels) SendSMS(ctx context.Context, to, body string) error {
	if c.SMS == nil {
		return errChannelUnavailable
	}
	return c.SMS.SendSMS(ctx, to, body)
}

// DeliveryPolicy names which channel outcomes count as delivered.
type DeliveryPolicy string

const (
	// PolicyEmailRequired requires email success; SMS is advisory and its
	// failure is logged, not surfaced.
	PolicyEmailRequired DeliveryPolicy = "email_required"
	// PolicyAnyChannel requires at least one channel to succeed.
	PolicyAnyChannel DeliveryPolicy = "any_channel"
	// PolicyAllChannels requires every attempted channel to succeed.
	PolicyAllChannels DeliveryPolicy = "all_channels"
)

// Valid reports whether p is a known policy.
func (p DeliveryPolicy) Valid() bool {
	switch p {
	case PolicyEmailRequired, PolicyAnyChannel, PolicyAllChannels:
		return true
	}
	return false
}

// Dispatcher composes and sends OTP notifications.
type Dispatcher struct {
	sender      MessageSender
	policy      DeliveryPolicy
	countryCode string
	logger      *zap.Logger
}

// NewDispatcher wires a Dispatcher. A nil logger means no logging.
func NewDispatcher(sender MessageSender, policy DeliveryPolicy, countryCode string, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		sender:      sender,
		policy:      policy,
		countryCode: countryCode,
		logger:      logger,
	}
}

// SendOTPEmail sends the reset-code email and reports success.
func (d *Dispatcher) SendOTPEmail(ctx context.Context, to, code string, ttl time.Duration) bool {
	err := d.sender.SendEmail(ctx, to, "Password Reset OTP", otpEmailHTML(code, ttl), otpEmailText(code, ttl))
	if err != nil {
		d.logger.Warn("otp email send failed", zap.Error(err))
		return false
	}
	return true
}

// SendOTPSMS sends the reset-code SMS and reports success. The destination is
// normalized with the default country code first.
func (d *Dispatcher) SendOTPSMS(ctx context.Context, phone, code string, ttl time.Duration) bool {
	to := FormatPhone(phone, d.countryCode)
	body := fmt.Sprintf("Your OTP is: %s. It expires in %d minutes.", code, int(ttl.Minutes()))
	if err := d.sender.SendSMS(ctx, to, body); err != nil {
		d.logger.Warn("otp sms send failed", zap.Error(err))
		return false
	}
	return true
}

// DeliverOTP attempts every channel with a destination, then applies the
// delivery policy. A channel failure never blocks the other channel. An empty
// phone skips the SMS channel entirely.
func (d *Dispatcher) DeliverOTP(ctx context.Context, email, phone, code string, ttl time.Duration) error {
	emailOK := d.SendOTPEmail(ctx, email, code, ttl)

	smsAttempted := phone != ""
	smsOK := false
	if smsAttempted {
		smsOK = d.SendOTPSMS(ctx, phone, code, ttl)
	}

	delivered := false
	switch d.policy {
	case PolicyAnyChannel:
		delivered = emailOK || smsOK
	case PolicyAllChannels:
		delivered = emailOK && (!smsAttempted || smsOK)
	default: // PolicyEmailRequired
		delivered = emailOK
	}
	if !delivered {
		return ErrNotDelivered
	}
	return nil
}

// FormatPhone prefixes defaultCountryCode to numbers lacking a leading +,
// stripping any leading zeros first.
func FormatPhone(number, defaultCountryCode string) string {
	number = strings.TrimSpace(number)
	if number == "" || strings.HasPrefix(number, "+") {
		return number
	}
	return defaultCountryCode + strings.TrimLeft(number, "0")
}

func otpEmailHTML(code string, ttl time.Duration) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Reset Your Password</h2>
  <p>We received a request to reset your password. Please use the following OTP to proceed:</p>
  <div style="background-color: #f4f4f4; padding: 10px; text-align: center; font-size: 24px; letter-spacing: 8px; font-weight: bold;">%s</div>
  <p>This OTP will expire in %d minutes.</p>
  <p>If you didn't request this, please ignore this email.</p>
</div>`, code, int(ttl.Minutes()))
}

func otpEmailText(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your password reset OTP is: %s. It expires in %d minutes. If you didn't request this, ignore this message.", code, int(ttl.Minutes()))
}
