package report

import (
	"fmt"
	"strings"

	"github.com/teemow/opshelm/internal/signal"
)

const (
	maxRelated        = 5
	maxListedAttendee = 5
	agendaFallbackLen = 500
	previewLen        = 200
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
}

// MeetingPrep renders prep notes. With a subject it documents the first
// meeting whose subject contains it (case-insensitive) together with related
// signals; without one it summarises every meeting.
func (g *Generator) MeetingPrep(signals []signal.Signal, subject string) string {
	meetings := signal.Select[*signal.Meeting](signals)

	if subject != "" {
		needle := strings.ToLower(subject)
		for _, m := range meetings {
			if strings.Contains(strings.ToLower(m.Subject), needle) {
				return g.singleMeetingPrep(m, signals)
			}
		}
		return fmt.Sprintf("# Meeting Prep\n\nMeeting \"%s\" not found.\n", subject)
	}

	var b strings.Builder
	b.WriteString("# Meeting Prep\n\n")
	if len(meetings) == 0 {
		b.WriteString("No upcoming meetings found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "**Total Meetings:** %d\n\n", len(meetings))
	for _, m := range meetings {
		g.writeMeetingSection(&b, m)
		b.WriteString("\n---\n\n")
	}
	return b.String()
}

func (g *Generator) singleMeetingPrep(m *signal.Meeting, all []signal.Signal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Meeting Prep: %s\n\n", m.Subject)
	fmt.Fprintf(&b, "**Date/Time:** %s\n", g.timestamp(m.Timestamp))
	fmt.Fprintf(&b, "**Organizer:** %s\n", m.Sender)
	if len(m.Attendees) > 0 {
		fmt.Fprintf(&b, "**Attendees:** %s\n", strings.Join(m.Attendees, ", "))
	}
	if m.Location != "" {
		fmt.Fprintf(&b, "**Location:** %s\n", m.Location)
	}

	b.WriteString("\n## Agenda\n")
	if m.Agenda != "" {
		fmt.Fprintf(&b, "%s\n", m.Agenda)
	} else {
		fmt.Fprintf(&b, "%s...\n", truncate(m.Body, agendaFallbackLen))
	}

	b.WriteString("\n## Related Context\n")
	related := RelatedSignals(m, all)
	if len(related) == 0 {
		b.WriteString("No related context found.\n")
	}
	for _, s := range related {
		fmt.Fprintf(&b, "- [%s] %s\n", strings.ToUpper(string(s.Kind())), s.Core().Subject)
	}
	return b.String()
}

func (g *Generator) writeMeetingSection(b *strings.Builder, m *signal.Meeting) {
	fmt.Fprintf(b, "## %s\n\n", m.Subject)
	fmt.Fprintf(b, "**Time:** %s\n", g.timestamp(m.Timestamp))
	fmt.Fprintf(b, "**Organizer:** %s\n", m.Sender)

	if n := len(m.Attendees); n > 0 {
		shown := m.Attendees[:min(n, maxListedAttendee)]
		fmt.Fprintf(b, "**Attendees:** %s", strings.Join(shown, ", "))
		if n > maxListedAttendee {
			fmt.Fprintf(b, " and %d more", n-maxListedAttendee)
		}
		b.WriteString("\n")
	}

	if preview := excerpt(m.Body, previewLen); preview != "" {
		fmt.Fprintf(b, "\n**Preview:** %s...\n", preview)
	}
}

// Keywords returns the lowercased words of subject longer than three
// characters that are not stop words.
func Keywords(subject string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(subject)) {
		if len([]rune(w)) > 3 && !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

// RelatedSignals returns up to five non-meeting signals from a different
// message whose subject or body mentions a keyword of the meeting subject.
func RelatedSignals(m *signal.Meeting, all []signal.Signal) []signal.Signal {
	keywords := Keywords(m.Subject)
	if len(keywords) == 0 {
		return nil
	}

	var out []signal.Signal
	for _, s := range all {
		if len(out) == maxRelated {
			break
		}
		core := s.Core()
		if s.Kind() == signal.KindMeeting || core.ID == m.ID {
			continue
		}
		text := strings.ToLower(core.Subject + " " + core.Body)
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
