package report

import (
	"strings"
	"time"
	"unicode"

	"github.com/teemow/opshelm/internal/signal"
)

// Report names, used for file names, metrics and tool names.
const (
	NameDailyRunway      = "daily-runway"
	NameCustomerQueue    = "customer-queue"
	NameMeetingPrep      = "meeting-prep"
	NamePromiseReminders = "promise-reminders"
	NameAccomplishments  = "accomplishments"
)

// Display layouts.
const (
	timestampLayout = "Jan 2, 2006 3:04 PM"
	dateLayout      = "Jan 2, 2006"
	titleDateLayout = "2006-01-02"
	monthLayout     = "January 2006"
)

// Generator renders reports relative to an injected clock.
type Generator struct {
	now func() time.Time
	loc *time.Location
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the source of "now" for bucketing and period windows.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLocation sets the zone used for displayed times and calendar days.
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) { g.loc = loc }
}

// New creates a Generator using the wall clock and the local zone by default.
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) current() time.Time {
	return g.now().In(g.loc)
}

func (g *Generator) timestamp(t time.Time) string {
	return t.In(g.loc).Format(timestampLayout)
}

func (g *Generator) date(t time.Time) string {
	return t.In(g.loc).Format(dateLayout)
}

func (g *Generator) sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(g.loc).Date()
	by, bm, bd := b.In(g.loc).Date()
	return ay == by && am == bm && ad == bd
}

// truncate returns at most n runes of s.
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func excerpt(s string, n int) string {
	return strings.TrimFunc(truncate(s, n), unicode.IsSpace)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// group is one bucket of an insertion-ordered grouping.
type group[T any] struct {
	key   string
	items []T
}

// groupBy buckets items by key, keeping groups in order of first appearance.
func groupBy[T any](items []T, key func(T) string) []group[T] {
	index := make(map[string]int)
	var groups []group[T]
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[T]{key: k})
		}
		groups[i].items = append(groups[i].items, it)
	}
	return groups
}

func workspaceOf(s signal.Signal) string {
	return s.Core().Workspace
}
