package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/teemow/opshelm/internal/signal"
)

func TestCustomerQueue(t *testing.T) {
	signals := []signal.Signal{
		ticket("m1", "Parex", "Slow reports", "b@parex.com", signal.PriorityHigh),
		meeting("m2", "Parex", "Sync", ""),
		&signal.Ticket{Base: base("m3", "Parex", "Outage", "a@parex.com", testNow), TicketID: "INC-9", Priority: signal.PriorityCritical, Status: signal.StatusOpen},
		ticket("m4", "Parex", "Export fails", "b@parex.com", signal.PriorityHigh),
		ticket("m5", "Parex", "Login loop", "b@parex.com", signal.PriorityHigh),
	}

	want := strings.Join([]string{
		"# Customer Queue Brief",
		"",
		"**Workspace:** Parex",
		"",
		"**Total Customers:** 2",
		"**Total Tickets:** 4",
		"",
		"## Priority Breakdown",
		"- Critical: 1",
		"- High: 3",
		"- Medium: 0",
		"- Low: 0",
		"",
		"## Customer Queue",
		"",
		"### a@parex.com (1 tickets)",
		"- 🔴 **INC-9**: Outage",
		"  - Status: open",
		"  - Received: Mar 10, 2025 12:00 PM",
		"",
		"### b@parex.com (3 tickets)",
		"- 🟠 **N/A**: Slow reports",
		"  - Status: open",
		"  - Received: Mar 10, 2025 12:00 PM",
		"- 🟠 **N/A**: Export fails",
		"  - Status: open",
		"  - Received: Mar 10, 2025 12:00 PM",
		"- 🟠 **N/A**: Login loop",
		"  - Status: open",
		"  - Received: Mar 10, 2025 12:00 PM",
		"",
		"",
	}, "\n")

	assert.Equal(t, want, newTestGenerator().CustomerQueue(signals, "Parex"))
}

func TestCustomerQueue_CustomerKey(t *testing.T) {
	withCustomer := ticket("m1", "Parex", "a", "x@parex.com", signal.PriorityLow)
	withCustomer.Customer = "Acme Corp"

	assert.Equal(t, "Acme Corp", CustomerKey(withCustomer))
	assert.Equal(t, "x@parex.com", CustomerKey(ticket("m2", "Parex", "b", "x@parex.com", signal.PriorityLow)))
	assert.Equal(t, "Unknown", CustomerKey(ticket("m3", "Parex", "c", "", signal.PriorityLow)))
}

func TestCustomerQueue_TiesKeepFirstAppearance(t *testing.T) {
	out := newTestGenerator().CustomerQueue([]signal.Signal{
		ticket("m1", "d", "a", "first@x.com", signal.PriorityMedium),
		ticket("m2", "d", "b", "second@x.com", signal.PriorityMedium),
	}, "")

	assert.NotContains(t, out, "**Workspace:**")
	assert.Less(t, strings.Index(out, "### first@x.com"), strings.Index(out, "### second@x.com"))
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "🔴", Badge(signal.PriorityCritical))
	assert.Equal(t, "🟠", Badge(signal.PriorityHigh))
	assert.Equal(t, "🟡", Badge(signal.PriorityMedium))
	assert.Equal(t, "🟢", Badge(signal.PriorityLow))
	assert.Equal(t, "⚪", Badge(signal.PriorityUnknown))
}

func TestScore(t *testing.T) {
	assert.Equal(t, 116, Score([]*signal.Ticket{
		{Priority: signal.PriorityCritical},
		{Priority: signal.PriorityHigh},
		{Priority: signal.PriorityMedium},
		{Priority: signal.PriorityLow},
		{Priority: signal.PriorityUnknown},
	}))
}

func TestCustomerQueue_Idempotent(t *testing.T) {
	priorities := []signal.Priority{signal.PriorityLow, signal.PriorityMedium, signal.PriorityHigh, signal.PriorityCritical, signal.PriorityUnknown}
	gen := newTestGenerator()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		signals := make([]signal.Signal, n)
		for i := range signals {
			sender := rapid.SampledFrom([]string{"a@x.com", "b@x.com", "c@x.com", ""}).Draw(t, "sender")
			p := rapid.SampledFrom(priorities).Draw(t, "priority")
			signals[i] = ticket("m", "ws", "subject", sender, p)
		}

		first := gen.CustomerQueue(signals, "ws")
		second := gen.CustomerQueue(signals, "ws")
		if first != second {
			t.Fatalf("output differs between runs:\n%s\n---\n%s", first, second)
		}
	})
}
