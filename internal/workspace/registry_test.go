package workspace

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestIdentify(t *testing.T) {
	r := NewRegistry(DefaultEntries...)

	tests := []struct {
		name    string
		subject string
		sender  string
		want    string
	}{
		{"prefix in subject", "Parex - login issue", "someone@example.com", "Parex"},
		{"prefix in sender", "Weekly sync", "ops@parkplace.com", "ParkPlace"},
		{"case insensitive", "PAREX escalation", "", "Parex"},
		{"no match", "Lunch plans", "friend@example.com", DefaultWorkspace},
		{"empty inputs", "", "", DefaultWorkspace},
		{"first registered wins", "parkplace and parex", "", "Parex"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Identify(tt.subject, tt.sender))
		})
	}
}

func TestIdentify_SpansSubjectAndSender(t *testing.T) {
	// The subject and sender are joined by a space before matching.
	r := NewRegistry(Entry{Name: "Joined", Prefix: "end start"})
	assert.Equal(t, "Joined", r.Identify("the end", "start@x.com"))
}

func TestAdd_LowercasesPrefix(t *testing.T) {
	r := NewRegistry()
	r.Add("Acme", "ACME")

	ws, ok := r.Get("Acme")
	assert.True(t, ok)
	assert.Equal(t, "acme", ws.Prefix)
	assert.True(t, ws.Active)
	assert.Equal(t, "Acme", r.Identify("acme rollout", ""))
}

func TestAdd_ReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry(
		Entry{Name: "A", Prefix: "alpha"},
		Entry{Name: "B", Prefix: "beta"},
	)
	r.Add("A", "omega")

	assert.Equal(t, []string{"A", "B"}, r.Names())
	assert.Equal(t, 2, r.Len())

	ws, _ := r.Get("A")
	assert.Equal(t, "omega", ws.Prefix)
	assert.Equal(t, DefaultWorkspace, r.Identify("alpha", ""))
	assert.Equal(t, "A", r.Identify("omega", ""))
}

func TestGet_Missing(t *testing.T) {
	_, ok := NewRegistry().Get("nope")
	assert.False(t, ok)
}

func TestActive(t *testing.T) {
	r := NewRegistry(DefaultEntries...)
	active := r.Active()
	assert.Len(t, active, 2)
	assert.Equal(t, "Parex", active[0].Name)
	assert.Equal(t, "ParkPlace", active[1].Name)
	assert.Empty(t, NewRegistry().Active())
}

func TestIdentify_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(t, "n")
		entries := make([]Entry, n)
		for i := range entries {
			prefix := rapid.StringMatching(`[a-z]{1,3}`).Draw(t, "prefix")
			entries[i] = Entry{Name: fmt.Sprintf("W%d", i), Prefix: prefix}
		}
		r := NewRegistry(entries...)

		subject := rapid.StringMatching(`[A-Za-z ]{0,20}`).Draw(t, "subject")
		sender := rapid.StringMatching(`[a-z]{0,8}@[a-z]{1,6}\.com`).Draw(t, "sender")
		got := r.Identify(subject, sender)

		haystack := strings.ToLower(subject + " " + sender)
		if got == DefaultWorkspace {
			for _, e := range entries {
				if strings.Contains(haystack, e.Prefix) {
					t.Fatalf("prefix %q present but got default", e.Prefix)
				}
			}
			return
		}

		ws, ok := r.Get(got)
		if !ok {
			t.Fatalf("identified unknown workspace %q", got)
		}
		if !strings.Contains(haystack, ws.Prefix) {
			t.Fatalf("workspace %q prefix %q not in %q", got, ws.Prefix, haystack)
		}
		// No earlier workspace may also match.
		for _, e := range entries {
			if e.Name == got {
				break
			}
			if strings.Contains(haystack, e.Prefix) {
				t.Fatalf("earlier workspace %q also matches", e.Name)
			}
		}
	})
}
