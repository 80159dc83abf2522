package ports

import "context"

// Mailer sends outbound notification email. Sends are fire-and-forget:
// callers log failures but never retry.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
