package mail

import (
	"context"
	"time"
)

// Address is a mailbox with an optional display name.
type Address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Message is a received email as delivered by a Source.
// Every field may be empty; a zero ReceivedAt means the receipt time is unknown.
type Message struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Preview    string    `json:"preview"`
	From       Address   `json:"from"`
	To         []Address `json:"to"`
	Cc         []Address `json:"cc"`
	ReceivedAt time.Time `json:"receivedAt,omitzero"`
	IsRead     bool      `json:"isRead"`
}

// Content returns the body, falling back to the preview.
func (m Message) Content() string {
	if m.Body != "" {
		return m.Body
	}
	return m.Preview
}

// Recipients returns the to then cc addresses, skipping empty ones.
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc))
	for _, list := range [][]Address{m.To, m.Cc} {
		for _, a := range list {
			if a.Email != "" {
				out = append(out, a.Email)
			}
		}
	}
	return out
}

// Source fetches messages received in [start, end).
type Source interface {
	Name() string
	FetchMessages(ctx context.Context, start, end time.Time) ([]Message, error)
}
