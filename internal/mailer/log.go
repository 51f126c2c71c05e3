package mailer

import (
	"context"
	"log/slog"
)

// Log is the dev mailer: it logs instead of sending.
type Log struct {
	logger *slog.Logger
}

func NewLog() *Log {
	return &Log{logger: slog.Default().With("component", "log-mailer")}
}

func (l *Log) Send(ctx context.Context, to, subject, htmlBody string) error {
	l.logger.Info("would send email", "to", to, "subject", subject, "bytes", len(htmlBody))
	return nil
}
