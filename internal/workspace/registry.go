package workspace

import (
	"strings"
)

// DefaultWorkspace is returned by Identify when no prefix matches.
const DefaultWorkspace = "default"

// Workspace is a named client context.
type Workspace struct {
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	Active bool   `json:"active"`
}

// Entry is one name/prefix pair from configuration.
type Entry struct {
	Name   string
	Prefix string
}

// Registry is an ordered set of workspaces keyed by name.
// It is not safe for concurrent mutation; build it once and share it read-only.
type Registry struct {
	order []*Workspace
	index map[string]*Workspace
}

// NewRegistry registers every entry as an active workspace, in order.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{index: make(map[string]*Workspace)}
	for _, e := range entries {
		r.Add(e.Name, e.Prefix)
	}
	return r
}

// Add registers an active workspace. The prefix is lowercased. Re-adding an
// existing name replaces it without changing its position.
func (r *Registry) Add(name, prefix string) {
	ws := &Workspace{Name: name, Prefix: strings.ToLower(prefix), Active: true}
	if existing, ok := r.index[name]; ok {
		*existing = *ws
		return
	}
	r.order = append(r.order, ws)
	r.index[name] = ws
}

// Get looks up a workspace by name.
func (r *Registry) Get(name string) (Workspace, bool) {
	ws, ok := r.index[name]
	if !ok {
		return Workspace{}, false
	}
	return *ws, true
}

// Identify returns the name of the first workspace, in registration order,
// whose prefix is contained in the lowercased subject or sender.
func (r *Registry) Identify(subject, sender string) string {
	haystack := strings.ToLower(subject + " " + sender)
	for _, ws := range r.order {
		if strings.Contains(haystack, ws.Prefix) {
			return ws.Name
		}
	}
	return DefaultWorkspace
}

// Active returns the active workspaces in registration order.
func (r *Registry) Active() []Workspace {
	var out []Workspace
	for _, ws := range r.order {
		if ws.Active {
			out = append(out, *ws)
		}
	}
	return out
}

// Names returns every workspace name in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, ws := range r.order {
		names = append(names, ws.Name)
	}
	return names
}

// Len reports the number of registered workspaces.
func (r *Registry) Len() int {
	return len(r.order)
}
