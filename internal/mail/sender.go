// Package mail implements outbound email for the Locus waitlist: the
// welcome message sent after a successful signup and the magic-link sign-in
// mail for administrators.
//
// Delivery is pluggable behind the Sender interface. Production uses the
// Resend API; every other environment uses a logging sender that records the
// would-be message instead of transmitting it. Callers cannot distinguish
// the two through the returned values.
package mail

import (
	"context"
	"time"
)

// SendRequest contains the data needed to send one email.
type SendRequest struct {
	To      string // recipient address
	From    string // sender address; the Sender's default applies when empty
	Subject string
	HTML    string // HTML body
	Text    string // plain-text alternative
}

// SendResult is the provider's acknowledgment of an accepted send.
type SendResult struct {
	MessageID string    // provider message id, for tracking
	SentAt    time.Time // when the send was accepted
}

// Sender delivers a single email through some transport.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
