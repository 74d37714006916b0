// Package notify delivers generated reports by email.  The service ships
// with a log-only implementation standing in for a real SMTP integration;
// both sit behind the Mailer interface and are passed to callers explicitly,
// never held in package-level state.
package notify

import (
	"context"
	"strings"
	"sync"

	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/pkg/errors"
)

// Message is one outbound email.  Attachments carry generated report files.
type Message struct {
	To          []string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Attachment is an in-memory file attached to a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer sends messages.  Implementations validate recipients and return an
// AppError with ErrCodeMailNoRecipients or ErrCodeMailDeliveryFailed.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Sender identity applied to outbound mail.
type Sender struct {
	Address string
	Name    string
}

// logMailer records deliveries to the log instead of a wire.  It is the
// default Mailer; installs with a real mail gateway swap in their own
// implementation at construction time.
type logMailer struct {
	sender Sender
	logger logging.Logger

	mu   sync.Mutex
	sent []Message
}

// NewLogMailer returns a Mailer that logs deliveries and retains them in
// memory for inspection.
func NewLogMailer(sender Sender, log logging.Logger) *logMailer {
	return &logMailer{sender: sender, logger: log.Named("mailer")}
}

// Send validates and records the message.
func (m *logMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeMailDeliveryFailed, "send cancelled")
	}
	recipients := make([]string, 0, len(msg.To))
	for _, to := range msg.To {
		to = strings.TrimSpace(to)
		if to == "" || !strings.Contains(to, "@") {
			continue
		}
		recipients = append(recipients, to)
	}
	if len(recipients) == 0 {
		return errors.New(errors.ErrCodeMailNoRecipients, "no valid recipients")
	}
	msg.To = recipients

	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()

	m.logger.Info("report email delivered",
		logging.String("from", m.sender.Address),
		logging.String("to", strings.Join(recipients, ",")),
		logging.String("subject", msg.Subject),
		logging.Int("attachments", len(msg.Attachments)),
	)
	return nil
}

// Sent returns a copy of every delivered message.
func (m *logMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}
