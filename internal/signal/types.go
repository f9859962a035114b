package signal

import (
	"encoding/json"
	"time"
)

// Kind names a signal variant.
type Kind string

const (
	KindTicket  Kind = "ticket"
	KindMeeting Kind = "meeting"
	KindTask    Kind = "task"
	KindPromise Kind = "promise"
)

// Kinds lists every variant in extraction order.
var Kinds = []Kind{KindTicket, KindMeeting, KindTask, KindPromise}

// Priority is a ticket urgency level. The zero value means unknown.
type Priority string

const (
	PriorityUnknown  Priority = ""
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in-progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// Signal is implemented by *Ticket, *Meeting, *Task and *Promise only.
type Signal interface {
	Kind() Kind
	Core() *Base
	isSignal()
}

// Base holds the fields shared by every signal.
type Base struct {
	ID         string    `json:"id"`
	Workspace  string    `json:"workspace"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Sender     string    `json:"sender"`
	Recipients []string  `json:"recipients"`
	Timestamp  time.Time `json:"timestamp"`
	// ExtractedData is reserved for enrichment; nothing reads it yet.
	ExtractedData map[string]any `json:"extractedData"`
}

// Core returns the shared fields.
func (b *Base) Core() *Base { return b }

// Ticket is a support request.
type Ticket struct {
	Base
	TicketID string       `json:"ticketId,omitempty"`
	Customer string       `json:"customer,omitempty"`
	Priority Priority     `json:"priority,omitempty"`
	Status   TicketStatus `json:"status"`
}

// Meeting is a scheduled discussion.
type Meeting struct {
	Base
	MeetingTime *time.Time `json:"meetingTime,omitempty"`
	Location    string     `json:"location,omitempty"`
	Attendees   []string   `json:"attendees"`
	Agenda      string     `json:"agenda,omitempty"`
}

// Task is an action item.
type Task struct {
	Base
	Assignee  string     `json:"assignee,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Completed bool       `json:"completed"`
}

// Promise is a commitment made by the sender.
type Promise struct {
	Base
	PromisedTo string     `json:"promisedTo,omitempty"`
	PromisedBy string     `json:"promisedBy"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	Fulfilled  bool       `json:"fulfilled"`
}

func (*Ticket) Kind() Kind  { return KindTicket }
func (*Meeting) Kind() Kind { return KindMeeting }
func (*Task) Kind() Kind    { return KindTask }
func (*Promise) Kind() Kind { return KindPromise }

func (*Ticket) isSignal()  {}
func (*Meeting) isSignal() {}
func (*Task) isSignal()    {}
func (*Promise) isSignal() {}

// MarshalJSON adds the "kind" discriminator.
func (t *Ticket) MarshalJSON() ([]byte, error) {
	type plain Ticket
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindTicket, (*plain)(t)})
}

// MarshalJSON adds the "kind" discriminator.
func (m *Meeting) MarshalJSON() ([]byte, error) {
	type plain Meeting
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindMeeting, (*plain)(m)})
}

// MarshalJSON adds the "kind" discriminator.
func (t *Task) MarshalJSON() ([]byte, error) {
	type plain Task
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindTask, (*plain)(t)})
}

// MarshalJSON adds the "kind" discriminator.
func (p *Promise) MarshalJSON() ([]byte, error) {
	type plain Promise
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*plain
	}{KindPromise, (*plain)(p)})
}
