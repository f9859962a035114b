package signal

// Select returns the signals of concrete type T, preserving order.
func Select[T Signal](signals []Signal) []T {
	var out []T
	for _, s := range signals {
		if v, ok := s.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// InWorkspace returns the signals resolved to the named workspace.
// An empty name returns the input unchanged.
func InWorkspace(signals []Signal, workspace string) []Signal {
	if workspace == "" {
		return signals
	}
	var out []Signal
	for _, s := range signals {
		if s.Core().Workspace == workspace {
			out = append(out, s)
		}
	}
	return out
}

// CountByKind tallies signals per variant.
func CountByKind(signals []Signal) map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, s := range signals {
		counts[s.Kind()]++
	}
	return counts
}

// Workspaces returns the distinct workspace names in order of first appearance.
func Workspaces(signals []Signal) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range signals {
		ws := s.Core().Workspace
		if !seen[ws] {
			seen[ws] = true
			names = append(names, ws)
		}
	}
	return names
}
