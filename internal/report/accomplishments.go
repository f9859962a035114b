package report

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/teemow/opshelm/internal/signal"
)

// Period selects the accomplishment window.
type Period string

const (
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// ErrUnknownPeriod is returned by ParsePeriod for anything but quarterly or yearly.
var ErrUnknownPeriod = errors.New("unknown period")

const topDays = 5

// ParsePeriod validates a period name.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodQuarterly, PeriodYearly:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownPeriod, s, PeriodQuarterly, PeriodYearly)
}

// Start returns the beginning of the window ending at now.
func (p Period) Start(now time.Time) time.Time {
	if p == PeriodYearly {
		return now.AddDate(-1, 0, 0)
	}
	return now.AddDate(0, -3, 0)
}

// Days is the look-back length used when fetching mail for the period.
func (p Period) Days() int {
	if p == PeriodYearly {
		return 365
	}
	return 90
}

// Title is the capitalised period name.
func (p Period) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// Accomplishments summarises signals received within the period ending now,
// optionally restricted to one workspace.
func (g *Generator) Accomplishments(signals []signal.Signal, period Period, workspace string) string {
	now := g.current()
	start := period.Start(now)

	var inWindow []signal.Signal
	for _, s := range signal.InWorkspace(signals, workspace) {
		ts := s.Core().Timestamp
		if !ts.Before(start) && !ts.After(now) {
			inWindow = append(inWindow, s)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Accomplishments\n\n", period.Title())
	fmt.Fprintf(&b, "**Period:** %s - %s\n", g.date(start), g.date(now))
	if workspace != "" {
		fmt.Fprintf(&b, "**Workspace:** %s\n", workspace)
	}
	b.WriteString("\n")

	counts := signal.CountByKind(inWindow)
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total Emails Processed:** %d\n", len(inWindow))
	fmt.Fprintf(&b, "- **Tickets Handled:** %d\n", counts[signal.KindTicket])
	fmt.Fprintf(&b, "- **Meetings Attended:** %d\n", counts[signal.KindMeeting])
	fmt.Fprintf(&b, "- **Tasks Completed:** %d\n", counts[signal.KindTask])
	fmt.Fprintf(&b, "- **Promises Made:** %d\n\n", counts[signal.KindPromise])

	if workspaces := groupBy(inWindow, workspaceOf); len(workspaces) > 1 {
		b.WriteString("## Workspace Breakdown\n\n")
		for _, ws := range workspaces {
			wsCounts := signal.CountByKind(ws.items)
			fmt.Fprintf(&b, "### %s\n", ws.key)
			fmt.Fprintf(&b, "- Emails: %d\n", len(ws.items))
			fmt.Fprintf(&b, "- Tickets: %d\n", wsCounts[signal.KindTicket])
			fmt.Fprintf(&b, "- Meetings: %d\n", wsCounts[signal.KindMeeting])
			b.WriteString("\n")
		}
	}

	if period == PeriodYearly {
		b.WriteString("## Monthly Trend\n\n")
		months := groupBy(inWindow, func(s signal.Signal) string {
			return s.Core().Timestamp.In(g.loc).Format(monthLayout)
		})
		for _, m := range months {
			fmt.Fprintf(&b, "**%s:** %d signals\n", m.key, len(m.items))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Key Accomplishments\n\n")
	b.WriteString("### Most Active Days\n")
	days := groupBy(inWindow, func(s signal.Signal) string { return g.date(s.Core().Timestamp) })
	slices.SortStableFunc(days, func(a, c group[signal.Signal]) int {
		return len(c.items) - len(a.items)
	})
	for _, d := range days[:min(len(days), topDays)] {
		fmt.Fprintf(&b, "- %s: %d activities\n", d.key, len(d.items))
	}

	return b.String()
}
