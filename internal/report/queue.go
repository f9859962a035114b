package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/teemow/opshelm/internal/signal"
)

var priorityScore = map[signal.Priority]int{
	signal.PriorityCritical: 100,
	signal.PriorityHigh:     10,
	signal.PriorityMedium:   5,
	signal.PriorityLow:      1,
}

var priorityBadge = map[signal.Priority]string{
	signal.PriorityCritical: "🔴",
	signal.PriorityHigh:     "🟠",
	signal.PriorityMedium:   "🟡",
	signal.PriorityLow:      "🟢",
}

// Badge returns the emoji for a ticket priority.
func Badge(p signal.Priority) string {
	if badge, ok := priorityBadge[p]; ok {
		return badge
	}
	return "⚪"
}

// CustomerKey groups a ticket by customer, then sender, then "Unknown".
func CustomerKey(t *signal.Ticket) string {
	switch {
	case t.Customer != "":
		return t.Customer
	case t.Sender != "":
		return t.Sender
	default:
		return "Unknown"
	}
}

// Score weighs a customer's tickets by priority.
func Score(tickets []*signal.Ticket) int {
	total := 0
	for _, t := range tickets {
		total += priorityScore[t.Priority]
	}
	return total
}

// CustomerQueue lists customers by descending ticket severity. workspace is
// only printed in the header; callers filter signals themselves. Customers
// with equal scores keep their order of first appearance.
func (g *Generator) CustomerQueue(signals []signal.Signal, workspace string) string {
	tickets := signal.Select[*signal.Ticket](signals)

	var b strings.Builder
	b.WriteString("# Customer Queue Brief\n\n")
	if workspace != "" {
		fmt.Fprintf(&b, "**Workspace:** %s\n\n", workspace)
	}

	customers := groupBy(tickets, CustomerKey)
	fmt.Fprintf(&b, "**Total Customers:** %d\n", len(customers))
	fmt.Fprintf(&b, "**Total Tickets:** %d\n\n", len(tickets))

	counts := make(map[signal.Priority]int)
	for _, t := range tickets {
		counts[t.Priority]++
	}
	b.WriteString("## Priority Breakdown\n")
	fmt.Fprintf(&b, "- Critical: %d\n", counts[signal.PriorityCritical])
	fmt.Fprintf(&b, "- High: %d\n", counts[signal.PriorityHigh])
	fmt.Fprintf(&b, "- Medium: %d\n", counts[signal.PriorityMedium])
	fmt.Fprintf(&b, "- Low: %d\n\n", counts[signal.PriorityLow])

	b.WriteString("## Customer Queue\n\n")

	slices.SortStableFunc(customers, func(a, c group[*signal.Ticket]) int {
		return Score(c.items) - Score(a.items)
	})

	for _, c := range customers {
		fmt.Fprintf(&b, "### %s (%d tickets)\n", c.key, len(c.items))
		for _, t := range c.items {
			fmt.Fprintf(&b, "- %s **%s**: %s\n", Badge(t.Priority), orNA(t.TicketID), t.Subject)
			fmt.Fprintf(&b, "  - Status: %s\n", t.Status)
			fmt.Fprintf(&b, "  - Received: %s\n", g.timestamp(t.Timestamp))
		}
		b.WriteString("\n")
	}

	return b.String()
}
