package mail

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/CalebBennett-Harper/locus/internal/domain"
)

// welcomeEmails counts welcome dispatch outcomes ("sent" or "failed").
var welcomeEmails = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "locus_welcome_emails_total",
		Help: "Welcome email dispatch outcomes.",
	},
	[]string{"outcome"},
)

// Mailer composes and sends the application's emails through a Sender.
type Mailer struct {
	Sender Sender
	// From is the default sender address, e.g.
	// "Locus <convergence@locus.app>".
	From string
	// Timeout bounds each send; defaults to 15s when zero.
	Timeout time.Duration
}

func (m *Mailer) timeout() time.Duration {
	if m.Timeout > 0 {
		return m.Timeout
	}
	return 15 * time.Second
}

// SendWelcome dispatches the signup confirmation. It is best-effort by
// contract: failures are logged and swallowed, never retried, and never
// affect the signup that triggered them. Safe to call from the store's
// post-commit hook on a detached goroutine.
func (m *Mailer) SendWelcome(s domain.Signup) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout())
	defer cancel()

	subject, htmlBody, textBody := WelcomeContent(s.Name, s.Cities)
	_, err := m.Sender.Send(ctx, SendRequest{
		To:      s.Email,
		From:    m.From,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	})
	if err != nil {
		welcomeEmails.WithLabelValues("failed").Inc()
		log.Warn().Err(err).Str("signup_id", s.ID).Msg("welcome email failed")
		return
	}
	welcomeEmails.WithLabelValues("sent").Inc()
}

// SendMagicLink delivers the admin sign-in link. Unlike the welcome mail the
// error is returned: a swallowed failure here would leave the admin waiting
// for a link that never arrives.
func (m *Mailer) SendMagicLink(ctx context.Context, email, link string) error {
	subject, htmlBody, textBody := MagicLinkContent(link)
	_, err := m.Sender.Send(ctx, SendRequest{
		To:      email,
		From:    m.From,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	})
	return err
}
