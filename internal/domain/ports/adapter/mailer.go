package adapter

import (
	"context"
	"time"
)

// Mailer is the outbound notification channel. The core hands a freshly
// issued code to it and does not inspect the transport; a delivery failure is
// reported upward but never unwinds the issued code.
type Mailer interface {
	SendActivationCode(ctx context.Context, toEmail, code string, ttl time.Duration) error
}
