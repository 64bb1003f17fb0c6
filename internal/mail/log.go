package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// LogSender records the would-be message instead of delivering it. Used in
// every non-production mode; the success flag looks identical to a real send.
type LogSender struct{}

// Send logs the message content and reports success.
func (LogSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	log.Info().
		Str("to", req.To).
		Str("subject", req.Subject).
		Str("text", req.Text).
		Msg("email would be sent")
	return SendResult{
		MessageID: fmt.Sprintf("logged-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
