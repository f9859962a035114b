package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/teemow/opshelm/internal/signal"
)

// DailyDigest renders the daily runway: meetings, open tickets and pending
// tasks per workspace. date only sets the title; a zero date means today.
// Low-priority tickets are counted but not listed.
func (g *Generator) DailyDigest(signals []signal.Signal, date time.Time) string {
	if date.IsZero() {
		date = g.current()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Runway Report - %s\n\n", date.In(g.loc).Format(titleDateLayout))

	for _, ws := range groupBy(signals, workspaceOf) {
		fmt.Fprintf(&b, "## Workspace: %s\n\n", ws.key)

		if meetings := signal.Select[*signal.Meeting](ws.items); len(meetings) > 0 {
			fmt.Fprintf(&b, "### Meetings (%d)\n", len(meetings))
			for _, m := range meetings {
				fmt.Fprintf(&b, "- **%s**\n", m.Subject)
				fmt.Fprintf(&b, "  - From: %s\n", m.Sender)
				fmt.Fprintf(&b, "  - Time: %s\n", g.timestamp(m.Timestamp))
				if len(m.Attendees) > 0 {
					fmt.Fprintf(&b, "  - Attendees: %s\n", strings.Join(m.Attendees, ", "))
				}
				b.WriteString("\n")
			}
		}

		if tickets := signal.Select[*signal.Ticket](ws.items); len(tickets) > 0 {
			fmt.Fprintf(&b, "### Active Tickets (%d)\n", len(tickets))
			writeTicketList(&b, "Critical", tickets, signal.PriorityCritical)
			writeTicketList(&b, "High Priority", tickets, signal.PriorityHigh)
			writeTicketList(&b, "Medium Priority", tickets, signal.PriorityMedium)
		}

		var pending []*signal.Task
		for _, t := range signal.Select[*signal.Task](ws.items) {
			if !t.Completed {
				pending = append(pending, t)
			}
		}
		if len(pending) > 0 {
			fmt.Fprintf(&b, "\n### Pending Tasks (%d)\n", len(pending))
			for _, t := range pending {
				fmt.Fprintf(&b, "- [ ] %s\n", t.Subject)
				if t.Assignee != "" {
					fmt.Fprintf(&b, "  - Assignee: %s\n", t.Assignee)
				}
				if t.DueDate != nil {
					fmt.Fprintf(&b, "  - Due: %s\n", g.date(*t.DueDate))
				}
			}
		}

		b.WriteString("\n")
	}

	return b.String()
}

func writeTicketList(b *strings.Builder, label string, tickets []*signal.Ticket, p signal.Priority) {
	first := true
	for _, t := range tickets {
		if t.Priority != p {
			continue
		}
		if first {
			fmt.Fprintf(b, "\n**%s:**\n", label)
			first = false
		}
		fmt.Fprintf(b, "- %s: %s\n", orNA(t.TicketID), t.Subject)
	}
}
