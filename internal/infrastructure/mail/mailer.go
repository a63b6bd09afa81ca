package mail

import (
	"context"
	"log"
	"time"
)

// Mailer sends a single message. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes outgoing mail to the process log. It stands in for a
// real SMTP/provider integration outside production.
type LogMailer struct {
	Logger *log.Logger
}

func (m LogMailer) Send(_ context.Context, to, subject, body string) error {
	if m.Logger != nil {
		m.Logger.Printf("MAIL out | to=%s subject=%q body=%q", to, subject, body)
	}
	return nil
}

// Dispatcher sends mail without blocking the caller. Delivery outcome is
// logged, never returned: a magic-link request acknowledges "link
// dispatched", not "link delivered".
type Dispatcher struct {
	mailer  Mailer
	logger  *log.Logger
	timeout time.Duration
}

func NewDispatcher(mailer Mailer, logger *log.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{mailer: mailer, logger: logger, timeout: timeout}
}

func (d *Dispatcher) Dispatch(to, subject, body string) {
	if d == nil || d.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.mailer.Send(ctx, to, subject, body); err != nil && d.logger != nil {
			d.logger.Printf("MAIL send failed | to=%s error=%v", to, err)
		}
	}()
}
