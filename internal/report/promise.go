package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/teemow/opshelm/internal/signal"
)

const promiseExcerptLen = 150

// Bucket is a promise's deadline standing relative to now.
type Bucket int

const (
	BucketOverdue Bucket = iota
	BucketDueToday
	BucketUpcoming
	BucketNoDeadline
)

var bucketHeadings = [...]string{
	BucketOverdue:    "🔴 Overdue",
	BucketDueToday:   "🟡 Due Today",
	BucketUpcoming:   "🟢 Upcoming",
	BucketNoDeadline: "⚪ No Deadline",
}

// Classify places a promise in exactly one bucket. A deadline before now is
// overdue even when it falls on today's date.
func (g *Generator) Classify(p *signal.Promise, now time.Time) Bucket {
	switch {
	case p.Deadline == nil:
		return BucketNoDeadline
	case p.Deadline.Before(now):
		return BucketOverdue
	case g.sameDay(*p.Deadline, now):
		return BucketDueToday
	default:
		return BucketUpcoming
	}
}

// PromiseReminders lists pending promises by deadline bucket. A non-empty
// workspace restricts the report to that workspace.
func (g *Generator) PromiseReminders(signals []signal.Signal, workspace string) string {
	promises := signal.Select[*signal.Promise](signal.InWorkspace(signals, workspace))
	now := g.current()

	var b strings.Builder
	b.WriteString("# Promise Reminders\n\n")
	if workspace != "" {
		fmt.Fprintf(&b, "**Workspace:** %s\n\n", workspace)
	}

	var pending []*signal.Promise
	fulfilled := 0
	for _, p := range promises {
		if p.Fulfilled {
			fulfilled++
		} else {
			pending = append(pending, p)
		}
	}

	fmt.Fprintf(&b, "**Pending Promises:** %d\n", len(pending))
	fmt.Fprintf(&b, "**Fulfilled Promises:** %d\n\n", fulfilled)

	if len(pending) == 0 {
		b.WriteString("✅ All promises fulfilled!\n")
		return b.String()
	}

	buckets := make([][]*signal.Promise, len(bucketHeadings))
	for _, p := range pending {
		k := g.Classify(p, now)
		buckets[k] = append(buckets[k], p)
	}

	for k, items := range buckets {
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s (%d)\n\n", bucketHeadings[k], len(items))
		for _, p := range items {
			g.writePromise(&b, p, Bucket(k) == BucketOverdue, now)
		}
	}

	return b.String()
}

func (g *Generator) writePromise(b *strings.Builder, p *signal.Promise, overdue bool, now time.Time) {
	fmt.Fprintf(b, "### %s\n", p.Subject)
	if p.PromisedBy != "" {
		fmt.Fprintf(b, "**Promised by:** %s\n", p.PromisedBy)
	}
	if p.PromisedTo != "" {
		fmt.Fprintf(b, "**Promised to:** %s\n", p.PromisedTo)
	}
	if p.Deadline != nil {
		if overdue {
			days := int(now.Sub(*p.Deadline) / (24 * time.Hour))
			fmt.Fprintf(b, "**Deadline:** %s (%d days overdue)\n", g.date(*p.Deadline), days)
		} else {
			fmt.Fprintf(b, "**Deadline:** %s\n", g.date(*p.Deadline))
		}
	}
	fmt.Fprintf(b, "**Received:** %s\n", g.date(p.Timestamp))

	if text := excerpt(p.Body, promiseExcerptLen); text != "" {
		fmt.Fprintf(b, "\n> %s...\n", text)
	}
	b.WriteString("\n")
}
