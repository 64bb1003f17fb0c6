package dashboard

import "github.com/rs/zerolog/log"

// LogNotifier writes notifications to the structured log. It stands in for a
// real toast channel when the workflow runs headless (scripts, tests, server
// rendering).
type LogNotifier struct{}

// Success logs an informational notification.
func (LogNotifier) Success(msg string) { log.Info().Str("toast", "success").Msg(msg) }

// Error logs an error notification.
func (LogNotifier) Error(msg string) { log.Warn().Str("toast", "error").Msg(msg) }
