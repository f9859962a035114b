package extract

import (
	"regexp"
	"strings"

	"github.com/teemow/opshelm/internal/signal"
)

// Keyword sets per signal kind. Matching is substring containment, so
// "support" also matches "supported".
var (
	TicketKeywords  = []string{"ticket", "issue", "problem", "bug", "error", "support", "help", "incident", "case"}
	MeetingKeywords = []string{"meeting", "call", "discussion", "sync", "standup", "review", "presentation", "demo"}
	TaskKeywords    = []string{"todo", "task", "action item", "deliverable", "complete", "finish", "assignment"}
	PromiseKeywords = []string{"will deliver", "committed to", "promise", "guarantee", "by deadline", "by eod", "by friday"}
)

// Rule classifies lowercased message text as one signal kind.
type Rule struct {
	Kind  signal.Kind
	Match func(text string) bool
}

// DefaultRules are evaluated in order; every matching rule contributes a signal.
var DefaultRules = []Rule{
	{Kind: signal.KindTicket, Match: containsAny(TicketKeywords)},
	{Kind: signal.KindMeeting, Match: containsAny(MeetingKeywords)},
	{Kind: signal.KindTask, Match: containsAny(TaskKeywords)},
	{Kind: signal.KindPromise, Match: containsAny(PromiseKeywords)},
}

func containsAny(keywords []string) func(string) bool {
	return func(text string) bool {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
}

var ticketIDPattern = regexp.MustCompile(`[A-Z]+-\d+`)

// ExtractTicketID returns the first uppercase-letters-dash-digits token in
// subject, or "".
func ExtractTicketID(subject string) string {
	return ticketIDPattern.FindString(subject)
}

// DetectPriority grades lowercased text. Critical wins over high, high over
// low; anything else is medium.
func DetectPriority(text string) signal.Priority {
	switch {
	case strings.Contains(text, "critical") || strings.Contains(text, "urgent"):
		return signal.PriorityCritical
	case strings.Contains(text, "high priority"):
		return signal.PriorityHigh
	case strings.Contains(text, "low priority"):
		return signal.PriorityLow
	default:
		return signal.PriorityMedium
	}
}
