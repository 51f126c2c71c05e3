// Package mailer sends digest email.
package mailer

import "context"

// Mailer delivers one HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
