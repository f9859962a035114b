package instrumentation

import (
	"sync"
)

// WorkspaceOther replaces workspace names beyond the label budget.
const WorkspaceOther = "other"

// WorkspaceLabels bounds the number of distinct workspace label values.
// The first max names seen keep their own label; later names map to
// WorkspaceOther. Safe for concurrent use.
type WorkspaceLabels struct {
	mu   sync.Mutex
	max  int
	seen map[string]struct{}
}

// NewWorkspaceLabels creates a labeler admitting at most max names.
func NewWorkspaceLabels(max int) *WorkspaceLabels {
	return &WorkspaceLabels{max: max, seen: make(map[string]struct{})}
}

// Label returns the metric label for a workspace name.
func (w *WorkspaceLabels) Label(name string) string {
	if w == nil {
		return name
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.seen[name]; ok {
		return name
	}
	if len(w.seen) >= w.max {
		return WorkspaceOther
	}
	w.seen[name] = struct{}{}
	return name
}
