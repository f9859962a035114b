package extract

import (
	"log/slog"
	"strings"
	"time"

	"github.com/teemow/opshelm/internal/logging"
	"github.com/teemow/opshelm/internal/mail"
	"github.com/teemow/opshelm/internal/signal"
)

// Resolver maps a subject and sender to a workspace name.
// *workspace.Registry satisfies it.
type Resolver interface {
	Identify(subject, sender string) string
}

// Extractor converts messages into signals.
type Extractor struct {
	resolver Resolver
	rules    []Rule
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock sets the time source used for messages without a receipt time.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// WithRules replaces DefaultRules.
func WithRules(rules []Rule) Option {
	return func(e *Extractor) { e.rules = rules }
}

// WithLogger sets the logger for per-message debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// New creates an Extractor resolving workspaces through r.
func New(r Resolver, opts ...Option) *Extractor {
	e := &Extractor{
		resolver: r,
		rules:    DefaultRules,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract classifies every message and returns the signals in message order.
func (e *Extractor) Extract(messages []mail.Message) []signal.Signal {
	var out []signal.Signal
	for _, msg := range messages {
		out = append(out, e.ExtractMessage(msg)...)
	}
	return out
}

// ExtractMessage returns zero to four signals for one message, ordered
// ticket, meeting, task, promise.
func (e *Extractor) ExtractMessage(msg mail.Message) []signal.Signal {
	body := msg.Content()
	sender := msg.From.Email
	text := strings.ToLower(msg.Subject + " " + body)

	ts := msg.ReceivedAt
	if ts.IsZero() {
		ts = e.now()
	}

	ws := e.resolver.Identify(msg.Subject, sender)
	recipients := msg.Recipients()

	base := func() signal.Base {
		return signal.Base{
			ID:            msg.ID,
			Workspace:     ws,
			Subject:       msg.Subject,
			Body:          body,
			Sender:        sender,
			Recipients:    recipients,
			Timestamp:     ts,
			ExtractedData: map[string]any{},
		}
	}

	var out []signal.Signal
	for _, rule := range e.rules {
		if !rule.Match(text) {
			continue
		}
		switch rule.Kind {
		case signal.KindTicket:
			out = append(out, &signal.Ticket{
				Base:     base(),
				TicketID: ExtractTicketID(msg.Subject),
				Priority: DetectPriority(text),
				Status:   signal.StatusOpen,
			})
		case signal.KindMeeting:
			out = append(out, &signal.Meeting{
				Base:      base(),
				Attendees: recipients,
			})
		case signal.KindTask:
			out = append(out, &signal.Task{Base: base()})
		case signal.KindPromise:
			out = append(out, &signal.Promise{
				Base:       base(),
				PromisedBy: sender,
			})
		}
	}

	if len(out) > 0 {
		e.logger.Debug("message classified",
			slog.String("message_id", msg.ID),
			logging.Workspace(ws),
			logging.Sender(sender),
			logging.Domain(sender),
			logging.Count(len(out)))
	}
	return out
}
