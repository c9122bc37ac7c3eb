// Package mailer delivers plain-text messages to an email address.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// Mailer sends a single text message. Implementations must not retry.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// OTPSubject is the subject line of passcode emails.
const OTPSubject = "Your OTP Code"

// OTPBody renders the passcode message text.
func OTPBody(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your OTP is %s. It will expire in %d minutes.", code, int(ttl.Minutes()))
}

// LogMailer writes messages to the log instead of sending them. It is the
// development default and leaks codes into logs, so never use it in production.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(l logging.Logger) *LogMailer {
	return &LogMailer{logger: l.With("module", "log_mailer")}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.Info(ctx, "mail", "to", to, "subject", subject, "body", body)
	return nil
}
