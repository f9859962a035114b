package report

import (
	"time"

	"github.com/teemow/opshelm/internal/signal"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestGenerator() *Generator {
	return New(WithClock(func() time.Time { return testNow }), WithLocation(time.UTC))
}

func base(id, ws, subject, sender string, ts time.Time) signal.Base {
	return signal.Base{
		ID:            id,
		Workspace:     ws,
		Subject:       subject,
		Sender:        sender,
		Timestamp:     ts,
		ExtractedData: map[string]any{},
	}
}

func ticket(id, ws, subject, sender string, p signal.Priority) *signal.Ticket {
	return &signal.Ticket{Base: base(id, ws, subject, sender, testNow), Priority: p, Status: signal.StatusOpen}
}

func meeting(id, ws, subject, body string, attendees ...string) *signal.Meeting {
	b := base(id, ws, subject, "organizer@"+ws+".com", testNow)
	b.Body = body
	return &signal.Meeting{Base: b, Attendees: attendees}
}

func promise(id, ws, subject string, deadline *time.Time) *signal.Promise {
	b := base(id, ws, subject, "me@company.com", testNow.Add(-48*time.Hour))
	b.Body = "I will deliver " + subject
	return &signal.Promise{Base: b, PromisedBy: "me@company.com", Deadline: deadline}
}

func at(ts time.Time, s signal.Signal) signal.Signal {
	s.Core().Timestamp = ts
	return s
}

func ptr(t time.Time) *time.Time { return &t }
